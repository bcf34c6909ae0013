package domain

import (
	"strings"
	"time"
)

const DefaultCapacity = 5

// Room is a managed private voice channel plus its gating access role.
// Every field is fixed once the room is registered.
type Room struct {
	GuildID      GuildID   `json:"guild_id"`
	ChannelID    ChannelID `json:"channel_id"`
	Name         string    `json:"name"`
	OwnerID      UserID    `json:"owner_id"`
	AccessRoleID RoleID    `json:"access_role_id"`
	Capacity     int       `json:"capacity"`
	CreatedAt    time.Time `json:"created_at"`
	RoleReused   bool      `json:"role_reused"`
}

// Age is measured from the room's registration time.
func (r Room) Age(now time.Time) time.Duration {
	return now.Sub(r.CreatedAt)
}

func (r Room) Expired(now time.Time, ttl time.Duration) bool {
	return r.Age(now) >= ttl
}

// RoomNameFor returns the requested channel name, or the default one
// derived from the owner's username.
func RoomNameFor(requested string, owner User) string {
	name := strings.TrimSpace(requested)
	if name == "" {
		name = "canal-privado-" + owner.Username
	}
	if r := []rune(name); len(r) > MaxRoomNameLen {
		name = string(r[:MaxRoomNameLen])
	}
	return name
}

// AccessRoleNameFor is deterministic so an existing role can be reused.
func AccessRoleNameFor(owner User) string {
	return "Sala-" + owner.Username
}
