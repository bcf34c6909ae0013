// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"
)

const (
	MaxUsernameLen = 32
	MaxRoomNameLen = 100
)

var (
	ErrUsernameEmpty = errors.New("username empty")
	ErrUserIDEmpty   = errors.New("user id empty")
)

type (
	GuildID   string
	ChannelID string
	RoleID    string
	UserID    string
)

type User struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
	// Tag is the display form used in replies (e.g. "alice" or "alice#0420").
	Tag string `json:"tag"`
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewUser(id UserID, username, tag string) (*User, error) {
	if id == "" {
		return nil, ErrUserIDEmpty
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameEmpty
	}
	if tag == "" {
		tag = username
	}
	return &User{ID: id, Username: username, Tag: tag}, nil
}

// Mention renders the platform mention for the user.
func (u User) Mention() string {
	return "<@" + string(u.ID) + ">"
}
