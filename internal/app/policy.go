package app

import (
	"fmt"
	"time"

	"github.com/dkeye/Rooms/internal/domain"
)

const (
	DefaultRoomTTL       = 30 * 24 * time.Hour
	DefaultSweepInterval = time.Hour
)

// RegistrationScope decides where slash commands are declared.
type RegistrationScope string

const (
	// ScopePerGuild registers on every guild the bot sees; updates are instant.
	ScopePerGuild RegistrationScope = "per-guild"
	// ScopeGlobal registers once for the application.
	ScopeGlobal RegistrationScope = "global"
	// ScopeEnv targets the configured guild when one is set, global otherwise.
	ScopeEnv RegistrationScope = "env-configured"
)

func ParseRegistrationScope(s string) (RegistrationScope, error) {
	switch RegistrationScope(s) {
	case ScopePerGuild, ScopeGlobal, ScopeEnv:
		return RegistrationScope(s), nil
	case "":
		return ScopePerGuild, nil
	}
	return "", fmt.Errorf("unknown registration scope %q", s)
}

// RoomPolicy holds the tunables shared by the dispatcher and the sweeper.
type RoomPolicy struct {
	// ReuseRole lets create-room adopt an existing role with the
	// deterministic access-role name instead of creating a new one.
	ReuseRole       bool
	DefaultCapacity int
	TTL             time.Duration
}

func DefaultPolicy() RoomPolicy {
	return RoomPolicy{
		ReuseRole:       true,
		DefaultCapacity: domain.DefaultCapacity,
		TTL:             DefaultRoomTTL,
	}
}

// capacityFor resolves the requested capacity; 0 means "not supplied".
func (p RoomPolicy) capacityFor(requested int) (int, error) {
	if requested == 0 {
		if p.DefaultCapacity > 0 {
			return p.DefaultCapacity, nil
		}
		return domain.DefaultCapacity, nil
	}
	if requested < 1 {
		return 0, ErrInvalidCapacity
	}
	return requested, nil
}

func (p RoomPolicy) ttl() time.Duration {
	if p.TTL <= 0 {
		return DefaultRoomTTL
	}
	return p.TTL
}
