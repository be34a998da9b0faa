package services

import (
	"context"
	"errors"

	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/core/domain"
)

// Auth service errors
var (
	ErrMissingRole = errors.New("login response carried no role")
)

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthService signs users in and out of the backend
type AuthService struct {
	api Doer
}

// NewAuthService creates a new auth service
func NewAuthService(api Doer) *AuthService {
	return &AuthService{api: api}
}

func loginRequest(username, password string) backend.Request {
	return post("/auth/login", LoginInput{Username: username, Password: password})
}

func logoutRequest() backend.Request {
	return post("/auth/logout", nil)
}

// Login authenticates against the backend and returns the identity along
// with the credential cookies the backend issued.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Identity, backend.Credentials, error) {
	resp, err := s.api.Do(ctx, loginRequest(username, password))
	if err != nil {
		return nil, nil, err
	}

	var user domain.Identity
	if err := resp.Decode(&user); err != nil {
		return nil, nil, err
	}
	if user.Role == "" {
		return nil, nil, ErrMissingRole
	}

	return &user, backend.CredentialsFromCookies(resp.Cookies), nil
}

// Logout ends the backend session held by the credentials in ctx
func (s *AuthService) Logout(ctx context.Context) error {
	return send(ctx, s.api, logoutRequest())
}
