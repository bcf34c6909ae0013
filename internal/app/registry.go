package app

import (
	"errors"
	"sync"

	"github.com/dkeye/Rooms/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var ErrDuplicateChannel = errors.New("channel already registered")

// GuildRooms maps a channel to the room it backs.
type GuildRooms map[domain.ChannelID]domain.Room

type claimKey struct {
	guild domain.GuildID
	owner domain.UserID
}

// Registry tracks every active room per guild. It lives only in memory:
// a restart starts from an empty registry.
type Registry struct {
	mu     sync.RWMutex
	guilds map[domain.GuildID]GuildRooms
	claims map[claimKey]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		guilds: make(map[domain.GuildID]GuildRooms),
		claims: make(map[claimKey]struct{}),
	}
}

// EnsureGuild returns a copy of the guild's rooms, creating an empty
// entry for the guild on first access.
func (r *Registry) EnsureGuild(guildID domain.GuildID) GuildRooms {
	r.mu.Lock()
	defer r.mu.Unlock()
	rooms, ok := r.guilds[guildID]
	if !ok {
		rooms = make(GuildRooms)
		r.guilds[guildID] = rooms
		log.Debug().Str("module", "app.registry").Str("guild", string(guildID)).Msg("guild tracked")
	}
	out := make(GuildRooms, len(rooms))
	for id, room := range rooms {
		out[id] = room
	}
	return out
}

func (r *Registry) FindByOwner(guildID domain.GuildID, ownerID domain.UserID) (domain.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, room := range r.guilds[guildID] {
		if room.OwnerID == ownerID {
			return room, true
		}
	}
	return domain.Room{}, false
}

func (r *Registry) Get(guildID domain.GuildID, channelID domain.ChannelID) (domain.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.guilds[guildID][channelID]
	return room, ok
}

func (r *Registry) Insert(guildID domain.GuildID, channelID domain.ChannelID, room domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rooms, ok := r.guilds[guildID]
	if !ok {
		rooms = make(GuildRooms)
		r.guilds[guildID] = rooms
	}
	if _, exists := rooms[channelID]; exists {
		return ErrDuplicateChannel
	}
	room.GuildID = guildID
	room.ChannelID = channelID
	rooms[channelID] = room
	log.Info().
		Str("module", "app.registry").
		Str("guild", string(guildID)).
		Str("channel", string(channelID)).
		Str("owner", string(room.OwnerID)).
		Msg("room registered")
	return nil
}

// Remove is idempotent; it reports whether an entry was actually deleted.
func (r *Registry) Remove(guildID domain.GuildID, channelID domain.ChannelID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rooms, ok := r.guilds[guildID]
	if !ok {
		return false
	}
	if _, ok := rooms[channelID]; !ok {
		return false
	}
	delete(rooms, channelID)
	log.Info().Str("module", "app.registry").Str("guild", string(guildID)).Str("channel", string(channelID)).Msg("room removed")
	return true
}

// Claim reserves the owner's single room slot while a room is being
// provisioned. It fails if the owner already has a room or a pending
// claim. The returned release func must be called exactly once.
func (r *Registry) Claim(guildID domain.GuildID, ownerID domain.UserID) (release func(), ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := claimKey{guild: guildID, owner: ownerID}
	if _, pending := r.claims[key]; pending {
		return nil, false
	}
	for _, room := range r.guilds[guildID] {
		if room.OwnerID == ownerID {
			return nil, false
		}
	}
	r.claims[key] = struct{}{}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.claims, key)
	}, true
}

// Snapshot returns every room of every guild.
func (r *Registry) Snapshot() []domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Room, 0, r.lenLocked())
	for _, rooms := range r.guilds {
		out = append(out, lo.Values(rooms)...)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lenLocked()
}

func (r *Registry) lenLocked() int {
	return lo.SumBy(lo.Values(r.guilds), func(rooms GuildRooms) int { return len(rooms) })
}
