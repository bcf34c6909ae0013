package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReconciler_ChannelDeleted_RemovesEntryAndRole(t *testing.T) {
	p := newFakePlatform(alice)
	d, reg, _ := newTestDispatcher(p)
	room := createFor(t, d, alice, 2)
	rec := NewReconciler(reg, p)

	p.removeChannel(room.ChannelID)
	require.True(t, rec.ChannelDeleted(context.Background(), guild, room.ChannelID))

	require.Zero(t, reg.Len())
	require.False(t, p.hasRole(room.AccessRoleID))
	require.Zero(t, p.count("DeleteChannel"), "the channel is already gone")
}

func TestReconciler_ChannelDeleted_IsIdempotent(t *testing.T) {
	p := newFakePlatform(alice)
	d, reg, _ := newTestDispatcher(p)
	room := createFor(t, d, alice, 2)
	rec := NewReconciler(reg, p)

	require.True(t, rec.ChannelDeleted(context.Background(), guild, room.ChannelID))
	require.False(t, rec.ChannelDeleted(context.Background(), guild, room.ChannelID))
	require.Zero(t, reg.Len())
}

func TestReconciler_ChannelDeleted_IgnoresUnrelatedChannels(t *testing.T) {
	p := newFakePlatform(alice)
	d, reg, _ := newTestDispatcher(p)
	createFor(t, d, alice, 2)
	rec := NewReconciler(reg, p)

	require.False(t, rec.ChannelDeleted(context.Background(), guild, "general"))
	require.False(t, rec.ChannelDeleted(context.Background(), "other-guild", "general"))
	require.Equal(t, 1, reg.Len())
	require.Zero(t, p.count("DeleteRole"))
}

func TestReconciler_ChannelDeleted_ToleratesRoleFailures(t *testing.T) {
	p := newFakePlatform(alice)
	d, reg, _ := newTestDispatcher(p)
	room := createFor(t, d, alice, 2)
	rec := NewReconciler(reg, p)

	// Role already removed, e.g. by a concurrent sweep.
	require.NoError(t, p.DeleteRole(context.Background(), guild, room.AccessRoleID))
	require.True(t, rec.ChannelDeleted(context.Background(), guild, room.ChannelID))

	room = createFor(t, d, alice, 2)
	p.deleteRoleErr = errors.New("500")
	require.True(t, rec.ChannelDeleted(context.Background(), guild, room.ChannelID))
	require.Zero(t, reg.Len())
}

func TestReconciler_CloseThenDeleteNotification(t *testing.T) {
	p := newFakePlatform(alice)
	d, reg, _ := newTestDispatcher(p)
	room := createFor(t, d, alice, 2)
	rec := NewReconciler(reg, p)

	_, err := d.CloseRoom(context.Background(), guild, alice.ID)
	require.NoError(t, err)
	// The platform echoes the deletion the bot itself performed.
	require.False(t, rec.ChannelDeleted(context.Background(), guild, room.ChannelID))
}
