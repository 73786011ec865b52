package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/listenupapp/shelfnotes/internal/auth"
	"github.com/listenupapp/shelfnotes/internal/domain"
	domainerrors "github.com/listenupapp/shelfnotes/internal/errors"
	"github.com/listenupapp/shelfnotes/internal/id"
	"github.com/listenupapp/shelfnotes/internal/store"
)

// RegisterRequest contains the data for a new account.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Password  string `json:"password" validate:"required,min=8,max=1024"`
	Email     string `json:"email" validate:"omitempty,email"`
	IPAddress string `json:"-"` // Extracted from request by handler
}

// CreateUserRequest is used by administrative tooling to add accounts.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	Email    string `json:"email" validate:"omitempty,email"`
	IsStaff  bool   `json:"is_staff"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"-"`
}

// RefreshRequest contains the refresh token to rotate.
type RefreshRequest struct {
	RefreshToken string `json:"refresh" validate:"required"`
	IPAddress    string `json:"-"`
}

// AuthResponse contains authentication tokens and user data.
type AuthResponse struct {
	User *domain.User
	SessionTokens
}

// AuthService handles accounts, login and token verification.
// Session management is delegated to SessionService.
type AuthService struct {
	users          store.UserStore
	hasher         *auth.PasswordHasher
	tokenService   *auth.TokenService
	sessionService *SessionService
	logger         *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users store.UserStore,
	hasher *auth.PasswordHasher,
	tokenService *auth.TokenService,
	sessionService *SessionService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:          users,
		hasher:         hasher,
		tokenService:   tokenService,
		sessionService: sessionService,
		logger:         logger,
	}
}

// CreateUser adds an account without starting a session.
func (s *AuthService) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, domainerrors.Conflict("a user with that username already exists")
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		Record:       domain.Record{ID: userID},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		IsStaff:      req.IsStaff,
	}
	user.InitTimestamps()

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("a user with that username already exists").WithCause(err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "username", user.Username, "is_staff", user.IsStaff)
	return user, nil
}

// Register creates an account and signs it in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	user, err := s.CreateUser(ctx, CreateUserRequest{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		return nil, err
	}

	tokens, err := s.sessionService.CreateSession(ctx, user, req.IPAddress)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &AuthResponse{User: user, SessionTokens: *tokens}, nil
}

// Login checks credentials and starts a new session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if isNotFound(err) {
			// Don't leak whether the username exists
			return nil, domainerrors.InvalidCredentials("invalid username or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := s.hasher.Verify(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	user.LastLoginAt = time.Now().UTC()
	user.Touch()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		// Log but don't fail login
		s.logger.Warn("failed to update last login time", "user_id", user.ID, "error", err)
	}

	tokens, err := s.sessionService.CreateSession(ctx, user, req.IPAddress)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &AuthResponse{User: user, SessionTokens: *tokens}, nil
}

// RefreshTokens exchanges a refresh token for a new token pair.
// The old refresh token is invalidated (token rotation).
func (s *AuthService) RefreshTokens(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	tokens, user, err := s.sessionService.RefreshSession(ctx, req.RefreshToken, req.IPAddress)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, SessionTokens: *tokens}, nil
}

// VerifyAccessToken validates a bearer token and returns the caller's identity.
// A token for a user that no longer exists is rejected.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (*domain.Viewer, error) {
	claims, err := s.tokenService.VerifyAccessToken(token)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired access token").WithCause(err)
	}

	user, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.Unauthorized("user no longer exists")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user.Viewer(), nil
}

// CurrentUser returns the account behind viewer.
func (s *AuthService) CurrentUser(ctx context.Context, viewer *domain.Viewer) (*domain.User, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}

	user, err := s.users.GetUser(ctx, viewer.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ListUsers returns every account.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes an account by username. Its sessions and notes go with it.
func (s *AuthService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("get user: %w", err)
	}

	if err := s.users.DeleteUser(ctx, user.ID); err != nil {
		if isNotFound(err) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("user deleted", "user_id", user.ID, "username", user.Username)
	return nil
}
