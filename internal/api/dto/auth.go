package dto

import (
	"time"

	"github.com/listenupapp/shelfnotes/internal/domain"
	"github.com/listenupapp/shelfnotes/internal/service"
)

// RegisterRequest is the body for creating an account.
type RegisterRequest struct {
	Username string `json:"username" maxLength:"150" doc:"Username (letters, digits and @.+-_)"`
	Password string `json:"password" doc:"Password (at least 8 characters)"`
	Email    string `json:"email,omitempty" doc:"Optional email address"`
}

// LoginRequest is the body for signing in.
type LoginRequest struct {
	Username string `json:"username" doc:"Username"`
	Password string `json:"password" doc:"Password"`
}

// RefreshRequest is the body for rotating a refresh token.
type RefreshRequest struct {
	Refresh string `json:"refresh" doc:"Refresh token from a previous login or refresh"`
}

// User is an account as shown to its owner.
type User struct {
	ID          string     `json:"id" doc:"User ID"`
	Username    string     `json:"username" doc:"Username"`
	Email       string     `json:"email" doc:"Email address"`
	IsStaff     bool       `json:"is_staff" doc:"Whether the user is staff"`
	CreatedAt   time.Time  `json:"created_at" doc:"Creation timestamp"`
	LastLoginAt *time.Time `json:"last_login_at" doc:"Last login, null if never"`
}

// AuthResponse carries a token pair and the signed-in user.
type AuthResponse struct {
	Access    string `json:"access" doc:"PASETO access token"`
	Refresh   string `json:"refresh" doc:"Refresh token"`
	ExpiresIn int    `json:"expires_in" doc:"Access token lifetime in seconds"`
	User      User   `json:"user" doc:"Authenticated user"`
}

// TokenPair is the result of a refresh.
type TokenPair struct {
	Access    string `json:"access" doc:"PASETO access token"`
	Refresh   string `json:"refresh" doc:"Replacement refresh token; the presented one is revoked"`
	ExpiresIn int    `json:"expires_in" doc:"Access token lifetime in seconds"`
}

// NewUser shapes an account for the wire.
func NewUser(u *domain.User) User {
	out := User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
	if !u.LastLoginAt.IsZero() {
		t := u.LastLoginAt
		out.LastLoginAt = &t
	}
	return out
}

// NewAuthResponse shapes a login or registration result.
func NewAuthResponse(resp *service.AuthResponse) AuthResponse {
	return AuthResponse{
		Access:    resp.AccessToken,
		Refresh:   resp.RefreshToken,
		ExpiresIn: resp.ExpiresIn,
		User:      NewUser(resp.User),
	}
}

// NewTokenPair shapes a refresh result.
func NewTokenPair(resp *service.AuthResponse) TokenPair {
	return TokenPair{
		Access:    resp.AccessToken,
		Refresh:   resp.RefreshToken,
		ExpiresIn: resp.ExpiresIn,
	}
}
