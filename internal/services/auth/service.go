package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"worldmark/internal/credstore"
	"worldmark/internal/dependencies/clock"
	"worldmark/internal/model"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Session represents an authenticated session
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles registration, login and session management. Sessions
// live in memory; credentials persist in the credential store.
type Service struct {
	creds  credstore.Store
	clock  clock.Clock
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(creds credstore.Store, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		creds:           creds,
		clock:           clk,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates an account and an initial session
func (s *Service) Register(ctx context.Context, username, password string) (*Session, error) {
	exists, err := s.creds.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.creds.SaveCredential(ctx, username, string(hash)); err != nil {
		return nil, err
	}
	if err := s.creds.SaveUser(ctx, &model.User{Username: username, Created: now}); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.String("username", username))
	return s.createSession(username), nil
}

// Login authenticates a user and creates a session. Unknown usernames
// and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	hash, err := s.creds.GetCredential(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort: a failed last_login update must not fail the login.
	if user, err := s.creds.GetUser(ctx, username); err == nil {
		user.LastLogin = s.clock.Now()
		if err := s.creds.SaveUser(ctx, user); err != nil {
			s.logger.Warn("could not update last login",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
		}
	}

	return s.createSession(username), nil
}

// User returns the user-data record for a username
func (s *Service) User(ctx context.Context, username string) (*model.User, error) {
	return s.creds.GetUser(ctx, username)
}

// ValidateSession checks a session token and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

func (s *Service) createSession(username string) *Session {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	now := s.clock.Now()

	session := &Session{
		Token:     "sess_" + base64.RawURLEncoding.EncodeToString(b),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}
