package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielolaszy/boardctl/internal/logging"
	"github.com/danielolaszy/boardctl/pkg/models"
)

// AuthService handles /auth and owns the session lifecycle.
type AuthService struct {
	client *Client
}

// Login exchanges credentials for a token and stores token and member in
// the session. The session is left untouched on failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	resp, err := Command[*models.LoginResponse](ctx, s.client, http.MethodPost, loginPath, nil,
		models.LoginRequest{Email: email, Password: password})
	if err != nil {
		logging.Error("login failed", "email", email, "error", err)
		return nil, err
	}
	if resp == nil || resp.Token == "" {
		return nil, fmt.Errorf("login response did not contain a token")
	}

	if err := s.client.session.Login(resp.Token, resp.TeamMember); err != nil {
		return nil, err
	}

	logging.Info("login successful", "email", email, "token", logging.MaskSensitive(resp.Token))
	return resp, nil
}

// CurrentUser returns the logged-in member, or nil.
func (s *AuthService) CurrentUser() *models.TeamMember {
	return s.client.session.CurrentUser()
}

// Logout clears the session. No request is sent.
func (s *AuthService) Logout() error {
	return s.client.session.Logout()
}
