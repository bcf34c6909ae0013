package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// CommandName is the slash-command name as declared on the platform.
type CommandName string

const (
	CmdCreateRoom  CommandName = "sala"
	CmdInvite      CommandName = "invitar"
	CmdKick        CommandName = "expulsar"
	CmdListMembers CommandName = "miembros"
	CmdCloseRoom   CommandName = "cerrar"
)

// Command is one inbound command invocation, already stripped of any
// platform types.
type Command struct {
	Name    CommandName
	GuildID domain.GuildID
	Actor   domain.User

	// create-room options; zero values mean "not supplied".
	MaxMembers int
	RoomName   string

	// invite/kick target.
	Target *domain.User
}

// CreateRoomRequest carries the create-room inputs.
type CreateRoomRequest struct {
	GuildID    domain.GuildID
	Owner      domain.User
	MaxMembers int
	Name       string
}

// Dispatcher executes the room commands against the registry and the
// platform. Registry lookups are repeated right before each mutation
// because other events may have run while a platform call was in flight.
type Dispatcher struct {
	Registry *Registry
	Platform core.Platform
	Policy   RoomPolicy
	Clock    clockwork.Clock
}

func NewDispatcher(reg *Registry, p core.Platform, policy RoomPolicy, clk clockwork.Clock) *Dispatcher {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Dispatcher{Registry: reg, Platform: p, Policy: policy, Clock: clk}
}

// Dispatch resolves cmd to one of the five room operations and renders
// the private reply for the actor.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) Reply {
	d.Registry.EnsureGuild(cmd.GuildID)
	logger := log.With().
		Str("module", "app.dispatcher").
		Str("command", string(cmd.Name)).
		Str("guild", string(cmd.GuildID)).
		Str("actor", string(cmd.Actor.ID)).
		Logger()

	var reply Reply
	switch cmd.Name {
	case CmdCreateRoom:
		room, err := d.CreateRoom(ctx, CreateRoomRequest{
			GuildID:    cmd.GuildID,
			Owner:      cmd.Actor,
			MaxMembers: cmd.MaxMembers,
			Name:       cmd.RoomName,
		})
		reply = createdReply(room, cmd.Actor, d.Policy.ttl(), err)
	case CmdInvite:
		if cmd.Target == nil {
			reply = errorReply(ErrMissingTarget)
			break
		}
		room, err := d.InviteMember(ctx, cmd.GuildID, cmd.Actor.ID, *cmd.Target)
		reply = invitedReply(room, *cmd.Target, err)
	case CmdKick:
		if cmd.Target == nil {
			reply = errorReply(ErrMissingTarget)
			break
		}
		_, err := d.KickMember(ctx, cmd.GuildID, cmd.Actor.ID, *cmd.Target)
		reply = kickedReply(*cmd.Target, err)
	case CmdListMembers:
		members, err := d.ListMembers(ctx, cmd.GuildID, cmd.Actor.ID)
		reply = membersReply(members, err)
	case CmdCloseRoom:
		_, err := d.CloseRoom(ctx, cmd.GuildID, cmd.Actor.ID)
		reply = closedReply(err)
	default:
		reply = errorReply(ErrUnknownCommand)
	}

	switch {
	case reply.Err == nil:
		logger.Info().Msg("command handled")
	case isPrecondition(reply.Err):
		logger.Debug().Err(reply.Err).Msg("command rejected")
	default:
		logger.Error().Err(reply.Err).Msg("command failed")
	}
	return reply
}

// CreateRoom provisions the access role and the voice channel and
// registers the room. Platform failures are reported as ErrRoomCreation
// after undoing whatever was already created.
func (d *Dispatcher) CreateRoom(ctx context.Context, req CreateRoomRequest) (domain.Room, error) {
	guildID, owner := req.GuildID, req.Owner

	release, ok := d.Registry.Claim(guildID, owner.ID)
	if !ok {
		return domain.Room{}, ErrRoomExists
	}
	defer release()

	capacity, err := d.Policy.capacityFor(req.MaxMembers)
	if err != nil {
		return domain.Room{}, err
	}

	roleName := domain.AccessRoleNameFor(owner)
	var (
		roleID domain.RoleID
		reused bool
	)
	if d.Policy.ReuseRole {
		id, found, err := d.Platform.FindRole(ctx, guildID, roleName)
		if err != nil {
			return domain.Room{}, fmt.Errorf("%w: find role %q: %w", ErrRoomCreation, roleName, err)
		}
		roleID, reused = id, found
	}
	if !reused {
		roleID, err = d.Platform.CreateRole(ctx, guildID, roleName)
		if err != nil {
			return domain.Room{}, fmt.Errorf("%w: create role %q: %w", ErrRoomCreation, roleName, err)
		}
	}

	// Rollback must still reach the platform when the caller's context is gone.
	undoCtx := context.WithoutCancel(ctx)
	undoRole := func() {
		if reused {
			revokeIfHeld(undoCtx, d.Platform, guildID, owner.ID, roleID)
			return
		}
		deleteRoleIfExists(undoCtx, d.Platform, guildID, roleID)
	}

	if err := d.Platform.GrantRole(ctx, guildID, owner.ID, roleID); err != nil {
		undoRole()
		return domain.Room{}, fmt.Errorf("%w: grant role to owner: %w", ErrRoomCreation, err)
	}

	name := domain.RoomNameFor(req.Name, owner)
	channelID, err := d.Platform.CreateVoiceChannel(ctx, guildID, core.ChannelSpec{
		Name:         name,
		AccessRoleID: roleID,
		UserLimit:    capacity,
	})
	if err != nil {
		undoRole()
		return domain.Room{}, fmt.Errorf("%w: create channel %q: %w", ErrRoomCreation, name, err)
	}

	room := domain.Room{
		GuildID:      guildID,
		ChannelID:    channelID,
		Name:         name,
		OwnerID:      owner.ID,
		AccessRoleID: roleID,
		Capacity:     capacity,
		CreatedAt:    d.Clock.Now(),
		RoleReused:   reused,
	}
	if err := d.Registry.Insert(guildID, channelID, room); err != nil {
		deleteChannelIfExists(undoCtx, d.Platform, guildID, channelID)
		undoRole()
		return domain.Room{}, fmt.Errorf("%w: %w", ErrRoomCreation, err)
	}
	return room, nil
}

// InviteMember grants the actor's access role to target, as long as the
// role has fewer holders than the room capacity.
func (d *Dispatcher) InviteMember(ctx context.Context, guildID domain.GuildID, actorID domain.UserID, target domain.User) (domain.Room, error) {
	room, ok := d.Registry.FindByOwner(guildID, actorID)
	if !ok {
		return domain.Room{}, ErrNoRoom
	}

	members, err := d.Platform.RoleMembers(ctx, guildID, room.AccessRoleID)
	if err != nil {
		return room, fmt.Errorf("list members of role %s: %w", room.AccessRoleID, err)
	}
	if lo.ContainsBy(members, func(m domain.Member) bool { return m.User.ID == target.ID }) {
		return room, ErrAlreadyMember
	}
	if len(members) >= room.Capacity {
		return room, ErrCapacityReached
	}

	if _, ok := d.Registry.Get(guildID, room.ChannelID); !ok {
		return domain.Room{}, ErrNoRoom
	}
	if err := d.Platform.GrantRole(ctx, guildID, target.ID, room.AccessRoleID); err != nil {
		return room, fmt.Errorf("grant role %s to %s: %w", room.AccessRoleID, target.ID, err)
	}
	return room, nil
}

// KickMember revokes the actor's access role from target. A target that
// no longer holds the role counts as kicked.
func (d *Dispatcher) KickMember(ctx context.Context, guildID domain.GuildID, actorID domain.UserID, target domain.User) (domain.Room, error) {
	room, ok := d.Registry.FindByOwner(guildID, actorID)
	if !ok {
		return domain.Room{}, ErrNoRoom
	}
	if target.ID == actorID {
		return room, ErrKickOwner
	}

	err := d.Platform.RevokeRole(ctx, guildID, target.ID, room.AccessRoleID)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return room, fmt.Errorf("revoke role %s from %s: %w", room.AccessRoleID, target.ID, err)
	}
	return room, nil
}

func (d *Dispatcher) ListMembers(ctx context.Context, guildID domain.GuildID, actorID domain.UserID) ([]domain.Member, error) {
	room, ok := d.Registry.FindByOwner(guildID, actorID)
	if !ok {
		return nil, ErrNoRoom
	}
	members, err := d.Platform.RoleMembers(ctx, guildID, room.AccessRoleID)
	if err != nil {
		return nil, fmt.Errorf("list members of role %s: %w", room.AccessRoleID, err)
	}
	return members, nil
}

// CloseRoom tears the actor's room down. Role and channel deletes are
// best effort; the registry entry is always dropped.
func (d *Dispatcher) CloseRoom(ctx context.Context, guildID domain.GuildID, actorID domain.UserID) (domain.Room, error) {
	room, ok := d.Registry.FindByOwner(guildID, actorID)
	if !ok {
		return domain.Room{}, ErrNoRoom
	}
	role, channel := teardown(ctx, d.Platform, d.Registry, room)
	log.Info().
		Str("module", "app.dispatcher").
		Str("guild", string(guildID)).
		Str("channel", string(room.ChannelID)).
		Str("role_result", role.String()).
		Str("channel_result", channel.String()).
		Msg("room closed by owner")
	return room, nil
}
