package app

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
)

type fakeChannel struct {
	guild domain.GuildID
	spec  core.ChannelSpec
}

// fakePlatform is an in-memory guild: roles, role holders and channels.
type fakePlatform struct {
	mu sync.Mutex

	seq      int
	users    map[domain.UserID]domain.User
	roles    map[domain.RoleID]string
	holders  map[domain.RoleID]map[domain.UserID]bool
	channels map[domain.ChannelID]fakeChannel

	calls map[string]int

	createRoleErr    error
	createChannelErr error
	deleteRoleErr    error
	channelExistsErr error
}

func newFakePlatform(users ...domain.User) *fakePlatform {
	f := &fakePlatform{
		users:    make(map[domain.UserID]domain.User),
		roles:    make(map[domain.RoleID]string),
		holders:  make(map[domain.RoleID]map[domain.UserID]bool),
		channels: make(map[domain.ChannelID]fakeChannel),
		calls:    make(map[string]int),
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakePlatform) next(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakePlatform) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakePlatform) FindRole(_ context.Context, _ domain.GuildID, name string) (domain.RoleID, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["FindRole"]++
	for id, n := range f.roles {
		if n == name {
			return id, true, nil
		}
	}
	return "", false, nil
}

func (f *fakePlatform) CreateRole(_ context.Context, _ domain.GuildID, name string) (domain.RoleID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CreateRole"]++
	if f.createRoleErr != nil {
		return "", f.createRoleErr
	}
	id := domain.RoleID(f.next("role"))
	f.roles[id] = name
	f.holders[id] = make(map[domain.UserID]bool)
	return id, nil
}

func (f *fakePlatform) DeleteRole(ctx context.Context, _ domain.GuildID, roleID domain.RoleID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteRole"]++
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.deleteRoleErr != nil {
		return f.deleteRoleErr
	}
	if _, ok := f.roles[roleID]; !ok {
		return fmt.Errorf("role %s: %w", roleID, core.ErrNotFound)
	}
	delete(f.roles, roleID)
	delete(f.holders, roleID)
	return nil
}

func (f *fakePlatform) GrantRole(_ context.Context, _ domain.GuildID, userID domain.UserID, roleID domain.RoleID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GrantRole"]++
	h, ok := f.holders[roleID]
	if !ok {
		return fmt.Errorf("role %s: %w", roleID, core.ErrNotFound)
	}
	h[userID] = true
	return nil
}

func (f *fakePlatform) RevokeRole(_ context.Context, _ domain.GuildID, userID domain.UserID, roleID domain.RoleID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["RevokeRole"]++
	h, ok := f.holders[roleID]
	if !ok {
		return fmt.Errorf("role %s: %w", roleID, core.ErrNotFound)
	}
	delete(h, userID)
	return nil
}

func (f *fakePlatform) RoleMembers(_ context.Context, _ domain.GuildID, roleID domain.RoleID) ([]domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["RoleMembers"]++
	h, ok := f.holders[roleID]
	if !ok {
		return nil, fmt.Errorf("role %s: %w", roleID, core.ErrNotFound)
	}
	out := make([]domain.Member, 0, len(h))
	for id := range h {
		u, ok := f.users[id]
		if !ok {
			u = domain.User{ID: id, Username: string(id), Tag: string(id)}
		}
		out = append(out, domain.NewMember(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User.ID < out[j].User.ID })
	return out, nil
}

func (f *fakePlatform) CreateVoiceChannel(_ context.Context, guildID domain.GuildID, spec core.ChannelSpec) (domain.ChannelID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CreateVoiceChannel"]++
	if f.createChannelErr != nil {
		return "", f.createChannelErr
	}
	id := domain.ChannelID(f.next("chan"))
	f.channels[id] = fakeChannel{guild: guildID, spec: spec}
	return id, nil
}

func (f *fakePlatform) DeleteChannel(ctx context.Context, channelID domain.ChannelID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteChannel"]++
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := f.channels[channelID]; !ok {
		return fmt.Errorf("channel %s: %w", channelID, core.ErrNotFound)
	}
	delete(f.channels, channelID)
	return nil
}

func (f *fakePlatform) ChannelExists(_ context.Context, _ domain.GuildID, channelID domain.ChannelID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ChannelExists"]++
	if f.channelExistsErr != nil {
		return false, f.channelExistsErr
	}
	_, ok := f.channels[channelID]
	return ok, nil
}

// removeChannel simulates an administrator deleting the channel directly.
func (f *fakePlatform) removeChannel(id domain.ChannelID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.channels, id)
}

func (f *fakePlatform) hasRole(id domain.RoleID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.roles[id]
	return ok
}

func (f *fakePlatform) hasChannel(id domain.ChannelID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.channels[id]
	return ok
}

func (f *fakePlatform) roleHolders(id domain.RoleID) []domain.UserID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.UserID, 0, len(f.holders[id]))
	for u := range f.holders[id] {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
