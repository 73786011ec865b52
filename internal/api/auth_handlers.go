package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/shelfnotes/internal/api/dto"
	"github.com/listenupapp/shelfnotes/internal/service"
)

func (s *Server) registerAuthRoutes() {
	limited := huma.Middlewares{s.rateLimitByIP(s.authRateLimiter)}

	huma.Register(s.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/auth/register",
		Summary:       "Register new user",
		Description:   "Creates an account and returns access and refresh tokens",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   limited,
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "User login",
		Description: "Authenticates a user and returns access and refresh tokens",
		Tags:        []string{"Authentication"},
		Middlewares: limited,
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/api/auth/refresh",
		Summary:     "Refresh tokens",
		Description: "Exchanges a refresh token for a new pair. The presented refresh token is revoked.",
		Tags:        []string{"Authentication"},
		Middlewares: limited,
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID: "currentUser",
		Method:      http.MethodGet,
		Path:        "/api/auth/me",
		Summary:     "Current user",
		Description: "Returns the authenticated account",
		Tags:        []string{"Authentication"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCurrentUser)
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body dto.RegisterRequest
	ClientAddr
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body dto.LoginRequest
	ClientAddr
}

// RefreshInput wraps the refresh request for Huma.
type RefreshInput struct {
	Body dto.RefreshRequest
	ClientAddr
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body dto.AuthResponse
}

// RefreshOutput wraps the refreshed token pair for Huma.
type RefreshOutput struct {
	Body dto.TokenPair
}

// UserOutput wraps a user for Huma.
type UserOutput struct {
	Body dto.User
}

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Username:  input.Body.Username,
		Password:  input.Body.Password,
		Email:     input.Body.Email,
		IPAddress: input.IP(),
	})
	if err != nil {
		return nil, s.fail("register", err)
	}
	return &AuthOutput{Body: dto.NewAuthResponse(resp)}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Username:  input.Body.Username,
		Password:  input.Body.Password,
		IPAddress: input.IP(),
	})
	if err != nil {
		return nil, s.fail("login", err)
	}
	return &AuthOutput{Body: dto.NewAuthResponse(resp)}, nil
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
	resp, err := s.services.Auth.RefreshTokens(ctx, service.RefreshRequest{
		RefreshToken: input.Body.Refresh,
		IPAddress:    input.IP(),
	})
	if err != nil {
		return nil, s.fail("refresh", err)
	}
	return &RefreshOutput{Body: dto.NewTokenPair(resp)}, nil
}

func (s *Server) handleCurrentUser(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	user, err := s.services.Auth.CurrentUser(ctx, viewerFrom(ctx))
	if err != nil {
		return nil, s.fail("current user", err)
	}
	return &UserOutput{Body: dto.NewUser(user)}, nil
}
