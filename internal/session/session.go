package session

import (
	"encoding/json"
	"fmt"

	"github.com/danielolaszy/boardctl/internal/logging"
	"github.com/danielolaszy/boardctl/pkg/models"
)

const (
	// KeyToken holds the opaque bearer token.
	KeyToken = "token"
	// KeyCurrentUser holds the JSON-encoded logged-in member.
	KeyCurrentUser = "currentUser"
)

// Session is the explicit, injectable replacement for browser session storage.
type Session struct {
	store Store
}

// New wraps store. A nil store gets an in-memory one.
func New(store Store) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Session{store: store}
}

// Token returns the bearer token, or "" when logged out. Read failures are
// logged and treated as logged out.
func (s *Session) Token() string {
	token, ok, err := s.store.Get(KeyToken)
	if err != nil {
		logging.Warn("failed to read session token", "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

// CurrentUser returns the logged-in member or nil. A corrupt entry is purged
// and reported as absent.
func (s *Session) CurrentUser() *models.TeamMember {
	raw, ok, err := s.store.Get(KeyCurrentUser)
	if err != nil {
		logging.Warn("failed to read current user", "error", err)
		return nil
	}
	if !ok || raw == "" || raw == "null" {
		return nil
	}

	var user models.TeamMember
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logging.Error("invalid JSON in session for currentUser", "error", err)
		if delErr := s.store.Delete(KeyCurrentUser); delErr != nil {
			logging.Warn("failed to purge current user", "error", delErr)
		}
		return nil
	}
	return &user
}

// Login stores the token and the member returned by /auth/login.
func (s *Session) Login(token string, user *models.TeamMember) error {
	if err := s.store.Set(KeyToken, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode current user: %w", err)
	}
	if err := s.store.Set(KeyCurrentUser, string(encoded)); err != nil {
		return fmt.Errorf("failed to store current user: %w", err)
	}

	logging.Debug("session stored", "token", logging.MaskSensitive(token))
	return nil
}

// Logout clears both the token and the current user.
func (s *Session) Logout() error {
	if err := s.store.Delete(KeyToken); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	if err := s.store.Delete(KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	return nil
}
