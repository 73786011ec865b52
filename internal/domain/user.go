package domain

import (
	"strings"
	"time"
)

// User is an account that can authenticate and own notes.
type User struct {
	Record
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	LastLoginAt  time.Time `json:"last_login_at,omitzero"`
}

// NormalizeUsername returns the canonical form used for uniqueness checks.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Viewer returns the request identity for this user.
func (u *User) Viewer() *Viewer {
	return &Viewer{UserID: u.ID, Username: u.Username, IsStaff: u.IsStaff}
}
