package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
	"github.com/samber/lo"
)

// Discord caps voice channel user limits at 99; 0 means unlimited.
const maxVoiceUserLimit = 99

const membersPageSize = 1000

// restAPI is the part of *discordgo.Session the platform needs.
type restAPI interface {
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildRoleCreate(guildID string, data *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error)
	GuildRoleDelete(guildID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// memberCache is the gateway state, normally *discordgo.State with
// TrackMembers on.
type memberCache interface {
	Guild(guildID string) (*discordgo.Guild, error)
	RLock()
	RUnlock()
}

// Platform implements core.Platform on top of the Discord REST API.
type Platform struct {
	api   restAPI
	cache memberCache
}

var _ core.Platform = (*Platform)(nil)

func NewPlatform(api restAPI) *Platform {
	return &Platform{api: api}
}

// WithMemberCache makes RoleMembers answer from the gateway cache when it
// holds the guild's full member list.
func (p *Platform) WithMemberCache(c memberCache) *Platform {
	p.cache = c
	return p
}

func (p *Platform) FindRole(ctx context.Context, guildID domain.GuildID, name string) (domain.RoleID, bool, error) {
	roles, err := p.api.GuildRoles(string(guildID), discordgo.WithContext(ctx))
	if err != nil {
		return "", false, wrap(err, "list roles of guild %s", guildID)
	}
	role, ok := lo.Find(roles, func(r *discordgo.Role) bool { return r.Name == name })
	if !ok {
		return "", false, nil
	}
	return domain.RoleID(role.ID), true, nil
}

func (p *Platform) CreateRole(ctx context.Context, guildID domain.GuildID, name string) (domain.RoleID, error) {
	role, err := p.api.GuildRoleCreate(string(guildID), &discordgo.RoleParams{
		Name:        name,
		Permissions: lo.ToPtr(int64(0)),
		Mentionable: lo.ToPtr(false),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", wrap(err, "create role %q", name)
	}
	return domain.RoleID(role.ID), nil
}

func (p *Platform) DeleteRole(ctx context.Context, guildID domain.GuildID, roleID domain.RoleID) error {
	return wrap(p.api.GuildRoleDelete(string(guildID), string(roleID), discordgo.WithContext(ctx)), "delete role %s", roleID)
}

func (p *Platform) GrantRole(ctx context.Context, guildID domain.GuildID, userID domain.UserID, roleID domain.RoleID) error {
	err := p.api.GuildMemberRoleAdd(string(guildID), string(userID), string(roleID), discordgo.WithContext(ctx))
	return wrap(err, "add role %s to %s", roleID, userID)
}

func (p *Platform) RevokeRole(ctx context.Context, guildID domain.GuildID, userID domain.UserID, roleID domain.RoleID) error {
	err := p.api.GuildMemberRoleRemove(string(guildID), string(userID), string(roleID), discordgo.WithContext(ctx))
	return wrap(err, "remove role %s from %s", roleID, userID)
}

// RoleMembers reads the member cache first and otherwise pages through the
// guild member list over REST. Both need the GUILD_MEMBERS privileged intent.
func (p *Platform) RoleMembers(ctx context.Context, guildID domain.GuildID, roleID domain.RoleID) ([]domain.Member, error) {
	if members, ok := p.cachedRoleMembers(guildID, roleID); ok {
		return members, nil
	}
	var (
		out   []domain.Member
		after string
	)
	for {
		page, err := p.api.GuildMembers(string(guildID), after, membersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, wrap(err, "list members of guild %s", guildID)
		}
		for _, m := range page {
			if m.User == nil || !lo.Contains(m.Roles, string(roleID)) {
				continue
			}
			out = append(out, domain.NewMember(userOf(m.User)))
		}
		if len(page) < membersPageSize {
			return out, nil
		}
		after = page[len(page)-1].User.ID
	}
}

// cachedRoleMembers misses when there is no cache, the guild is unknown, or
// the cached list is partial (large guilds are not sent in full on connect).
func (p *Platform) cachedRoleMembers(guildID domain.GuildID, roleID domain.RoleID) ([]domain.Member, bool) {
	if p.cache == nil {
		return nil, false
	}
	g, err := p.cache.Guild(string(guildID))
	if err != nil || g == nil {
		return nil, false
	}
	p.cache.RLock()
	defer p.cache.RUnlock()
	if g.MemberCount == 0 || len(g.Members) < g.MemberCount {
		return nil, false
	}
	out := []domain.Member{}
	for _, m := range g.Members {
		if m == nil || m.User == nil || !lo.Contains(m.Roles, string(roleID)) {
			continue
		}
		out = append(out, domain.NewMember(userOf(m.User)))
	}
	return out, true
}

func (p *Platform) CreateVoiceChannel(ctx context.Context, guildID domain.GuildID, spec core.ChannelSpec) (domain.ChannelID, error) {
	limit := spec.UserLimit
	if limit > maxVoiceUserLimit {
		limit = 0
	}
	ch, err := p.api.GuildChannelCreateComplex(string(guildID), discordgo.GuildChannelCreateData{
		Name:      spec.Name,
		Type:      discordgo.ChannelTypeGuildVoice,
		UserLimit: limit,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				// The @everyone role shares the guild's id.
				ID:   string(guildID),
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
			{
				ID:    string(spec.AccessRoleID),
				Type:  discordgo.PermissionOverwriteTypeRole,
				Allow: discordgo.PermissionViewChannel | discordgo.PermissionVoiceConnect | discordgo.PermissionVoiceSpeak,
			},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", wrap(err, "create voice channel %q", spec.Name)
	}
	return domain.ChannelID(ch.ID), nil
}

func (p *Platform) DeleteChannel(ctx context.Context, channelID domain.ChannelID) error {
	_, err := p.api.ChannelDelete(string(channelID), discordgo.WithContext(ctx))
	return wrap(err, "delete channel %s", channelID)
}

func (p *Platform) ChannelExists(ctx context.Context, guildID domain.GuildID, channelID domain.ChannelID) (bool, error) {
	ch, err := p.api.Channel(string(channelID), discordgo.WithContext(ctx))
	if err != nil {
		if err = wrap(err, "get channel %s", channelID); errors.Is(err, core.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return ch.GuildID == string(guildID), nil
}

func userOf(u *discordgo.User) domain.User {
	return domain.User{ID: domain.UserID(u.ID), Username: u.Username, Tag: u.String()}
}

// wrap annotates err and maps Discord 404s onto core.ErrNotFound.
func wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	if isNotFound(err) {
		return fmt.Errorf("%s: %w: %w", msg, core.ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isNotFound(err error) bool {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) {
		return false
	}
	if rest.Response != nil && rest.Response.StatusCode == http.StatusNotFound {
		return true
	}
	if rest.Message != nil {
		switch rest.Message.Code {
		case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownRole, discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser:
			return true
		}
	}
	return false
}
