package app

import (
	"context"

	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
	"github.com/rs/zerolog/log"
)

// Reconciler resyncs the registry when a channel is deleted outside the
// close-room flow, e.g. by a guild administrator.
type Reconciler struct {
	Registry *Registry
	Platform core.Platform
}

func NewReconciler(reg *Registry, p core.Platform) *Reconciler {
	return &Reconciler{Registry: reg, Platform: p}
}

// ChannelDeleted drops the room backed by channelID and deletes its access
// role. Unrelated channels are ignored. The channel itself is never touched.
// It reports whether a room was reconciled.
func (r *Reconciler) ChannelDeleted(ctx context.Context, guildID domain.GuildID, channelID domain.ChannelID) bool {
	room, ok := r.Registry.Get(guildID, channelID)
	if !ok {
		return false
	}
	res := deleteRoleIfExists(ctx, r.Platform, guildID, room.AccessRoleID)
	if !r.Registry.Remove(guildID, channelID) {
		return false
	}
	log.Info().
		Str("module", "app.reconciler").
		Str("guild", string(guildID)).
		Str("channel", string(channelID)).
		Str("room", room.Name).
		Str("role_result", res.String()).
		Msg("room channel deleted externally, role removed")
	return true
}
