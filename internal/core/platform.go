package core

import (
	"context"
	"errors"

	"github.com/dkeye/Rooms/internal/domain"
)

// ErrNotFound is returned (wrapped) by a Platform when the addressed
// channel, role or member no longer exists.
var ErrNotFound = errors.New("not found")

// ChannelSpec describes a private voice channel gated by an access role.
type ChannelSpec struct {
	Name         string
	AccessRoleID domain.RoleID
	UserLimit    int
}

// Platform abstracts the chat platform the bot runs on.
// Implementations live in adapters; the app layer never sees SDK types.
type Platform interface {
	// FindRole looks a role up by exact name. ok is false when none exists.
	FindRole(ctx context.Context, guildID domain.GuildID, name string) (id domain.RoleID, ok bool, err error)
	CreateRole(ctx context.Context, guildID domain.GuildID, name string) (domain.RoleID, error)
	DeleteRole(ctx context.Context, guildID domain.GuildID, roleID domain.RoleID) error

	GrantRole(ctx context.Context, guildID domain.GuildID, userID domain.UserID, roleID domain.RoleID) error
	RevokeRole(ctx context.Context, guildID domain.GuildID, userID domain.UserID, roleID domain.RoleID) error
	// RoleMembers lists every guild member currently holding roleID.
	RoleMembers(ctx context.Context, guildID domain.GuildID, roleID domain.RoleID) ([]domain.Member, error)

	// CreateVoiceChannel creates a voice channel hidden from @everyone and
	// visible/connectable/speakable for spec.AccessRoleID.
	CreateVoiceChannel(ctx context.Context, guildID domain.GuildID, spec ChannelSpec) (domain.ChannelID, error)
	DeleteChannel(ctx context.Context, channelID domain.ChannelID) error
	ChannelExists(ctx context.Context, guildID domain.GuildID, channelID domain.ChannelID) (bool, error)
}

//go:generate mockgen -destination=mocks/platform_mock.go -package=mocks github.com/dkeye/Rooms/internal/core Platform

// DeleteResult is the outcome of a best-effort delete.
type DeleteResult int

const (
	Deleted DeleteResult = iota
	NotFound
	DeleteFailed
)

func (r DeleteResult) String() string {
	switch r {
	case Deleted:
		return "deleted"
	case NotFound:
		return "not_found"
	default:
		return "failed"
	}
}

// OK folds not-found into success.
func (r DeleteResult) OK() bool { return r != DeleteFailed }

// ResultOf classifies the error returned by a Platform delete.
func ResultOf(err error) DeleteResult {
	switch {
	case err == nil:
		return Deleted
	case errors.Is(err, ErrNotFound):
		return NotFound
	default:
		return DeleteFailed
	}
}
