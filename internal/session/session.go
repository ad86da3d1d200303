// Package session holds the signed-in user's token and profile for the
// lifetime of one front end: login, on demand refresh, logout.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"covoit/internal/forms"
	apperrors "covoit/pkg/errors"
	"covoit/pkg/logger"
	"covoit/pkg/model"
)

type AuthAPI interface {
	Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error)
	Register(ctx context.Context, input model.RegisterInput) (*model.AuthResponse, error)
}

type ProfileAPI interface {
	Get(ctx context.Context) (*model.Profile, error)
}

// User is the signed-in account as known to the client.
type User struct {
	Profile   model.Profile `json:"profil"`
	ExpiresAt time.Time     `json:"expiration,omitempty"`
}

type Session struct {
	mu        sync.RWMutex
	auth      AuthAPI
	profiles  ProfileAPI
	store     Store
	validator *forms.Validator
	log       *logger.Logger
	now       func() time.Time

	token   string
	claims  *Claims
	profile *model.Profile
}

func New(auth AuthAPI, profiles ProfileAPI, store Store, validator *forms.Validator, log *logger.Logger) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Session{
		auth:      auth,
		profiles:  profiles,
		store:     store,
		validator: validator,
		log:       log,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for expiry checks.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

// Restore loads a previously stored token. A missing, unreadable or expired
// token leaves the session signed out.
func (s *Session) Restore() error {
	raw, err := s.store.Load()
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}

	claims, err := ParseToken(raw)
	if err != nil || claims.Expired(s.now()) {
		s.log.Debug("Discarding stored token", "error", err)
		return s.store.Clear()
	}

	s.mu.Lock()
	s.token = raw
	s.claims = claims
	s.profile = nil
	s.mu.Unlock()
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	creds := model.Credentials{Email: email, Password: password}
	if s.validator != nil {
		if err := s.validator.Credentials(&creds); err != nil {
			return nil, err
		}
	}

	resp, err := s.auth.Login(ctx, creds)
	if err != nil {
		s.log.Info("Login refused", "email", creds.Email, "error", err)
		return nil, err
	}
	return s.start(ctx, resp.Token)
}

// Register creates an account and signs in when the backend hands back a
// token. A nil user means the account must be verified before logging in.
func (s *Session) Register(ctx context.Context, input model.RegisterInput) (*User, error) {
	if s.validator != nil {
		if err := s.validator.Register(&input); err != nil {
			return nil, err
		}
	}

	resp, err := s.auth.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Token == "" {
		s.log.Info("Account registered, verification pending", "email", input.Email)
		return nil, nil
	}
	return s.start(ctx, resp.Token)
}

func (s *Session) start(ctx context.Context, raw string) (*User, error) {
	if raw == "" {
		return nil, apperrors.Internal("The server did not return a token", nil)
	}
	claims, err := ParseToken(raw)
	if err != nil {
		return nil, apperrors.Internal("The server returned an unreadable token", err)
	}
	if claims.Expired(s.now()) {
		return nil, apperrors.Unauthorized("", "The server returned an expired token")
	}

	if err := s.store.Save(raw, claims.Expiry()); err != nil {
		s.log.Warn("Failed to persist session", "error", err)
	}

	s.mu.Lock()
	s.token = raw
	s.claims = claims
	s.profile = nil
	s.mu.Unlock()

	user, err := s.Refresh(ctx)
	if err != nil {
		if apperrors.AsAppError(err).StatusCode() == http.StatusUnauthorized {
			return nil, err
		}
		s.log.Warn("Signed in but profile could not be loaded", "error", err)
		if u, ok := s.Current(); ok {
			return u, nil
		}
		return nil, err
	}
	return user, nil
}

// Token returns the bearer token, or "" when signed out or expired.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claims == nil || s.claims.Expired(s.now()) {
		return ""
	}
	return s.token
}

// Current returns the signed-in user without contacting the backend.
func (s *Session) Current() (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claims == nil || s.claims.Expired(s.now()) {
		return nil, false
	}
	return s.userLocked(), true
}

func (s *Session) userLocked() *User {
	profile := s.claims.Profile()
	if s.profile != nil {
		profile = *s.profile
		if profile.Role == "" {
			profile.Role = s.claims.Role
		}
	}
	return &User{Profile: profile, ExpiresAt: s.claims.Expiry()}
}

// Refresh checks the token is still valid and reloads the profile. An
// expired token or a 401 from the backend signs the session out.
func (s *Session) Refresh(ctx context.Context) (*User, error) {
	s.mu.RLock()
	claims := s.claims
	s.mu.RUnlock()

	if claims == nil {
		return nil, apperrors.Unauthorized("", "You are not logged in")
	}
	if claims.Expired(s.now()) {
		s.clear()
		return nil, apperrors.Unauthorized("", "Your session has expired, please log in again")
	}

	profile, err := s.profiles.Get(ctx)
	if err != nil {
		if apperrors.AsAppError(err).StatusCode() == http.StatusUnauthorized {
			s.log.Info("Backend rejected the session token, signing out", "error", err)
			s.clear()
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claims != claims {
		return nil, apperrors.Unauthorized("", "The session changed while refreshing")
	}
	s.profile = profile
	return s.userLocked(), nil
}

// Logout forgets the token locally and in the store.
func (s *Session) Logout() error {
	return s.clear()
}

func (s *Session) clear() error {
	s.mu.Lock()
	s.token = ""
	s.claims = nil
	s.profile = nil
	s.mu.Unlock()
	return s.store.Clear()
}

// RequireAdmin fails unless the signed-in user has the admin role.
func (s *Session) RequireAdmin() error {
	user, ok := s.Current()
	if !ok {
		return apperrors.Unauthorized("", "You are not logged in")
	}
	if !user.Profile.IsAdmin() {
		return apperrors.Forbidden("This action is reserved to administrators")
	}
	return nil
}
