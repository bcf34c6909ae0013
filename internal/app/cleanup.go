package app

import (
	"context"

	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
	"github.com/rs/zerolog/log"
)

// deleteRoleIfExists never fails the caller: not-found counts as done,
// anything else is logged and reported as DeleteFailed.
func deleteRoleIfExists(ctx context.Context, p core.Platform, guildID domain.GuildID, roleID domain.RoleID) core.DeleteResult {
	if roleID == "" {
		return core.NotFound
	}
	res := core.ResultOf(p.DeleteRole(ctx, guildID, roleID))
	logDelete("role", string(roleID), guildID, res)
	return res
}

func deleteChannelIfExists(ctx context.Context, p core.Platform, guildID domain.GuildID, channelID domain.ChannelID) core.DeleteResult {
	if channelID == "" {
		return core.NotFound
	}
	res := core.ResultOf(p.DeleteChannel(ctx, channelID))
	logDelete("channel", string(channelID), guildID, res)
	return res
}

// revokeIfHeld takes roleID back from userID, tolerating a grant that is
// already gone.
func revokeIfHeld(ctx context.Context, p core.Platform, guildID domain.GuildID, userID domain.UserID, roleID domain.RoleID) core.DeleteResult {
	res := core.ResultOf(p.RevokeRole(ctx, guildID, userID, roleID))
	logDelete("grant", string(roleID)+"/"+string(userID), guildID, res)
	return res
}

func logDelete(kind, id string, guildID domain.GuildID, res core.DeleteResult) {
	ev := log.Debug()
	if !res.OK() {
		ev = log.Warn()
	}
	ev.Str("module", "app.cleanup").
		Str("guild", string(guildID)).
		Str(kind, id).
		Str("result", res.String()).
		Msg(kind + " delete")
}

// teardown deletes a room's role and channel (both best effort) and drops
// the registry entry, even when one of the deletes failed.
// The deletes ignore cancellation of ctx: once issued they run to completion.
func teardown(ctx context.Context, p core.Platform, reg *Registry, room domain.Room) (role, channel core.DeleteResult) {
	ctx = context.WithoutCancel(ctx)
	role = deleteRoleIfExists(ctx, p, room.GuildID, room.AccessRoleID)
	channel = deleteChannelIfExists(ctx, p, room.GuildID, room.ChannelID)
	reg.Remove(room.GuildID, room.ChannelID)
	return role, channel
}
