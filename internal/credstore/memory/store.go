package memory

import (
	"context"
	"sync"

	"worldmark/internal/credstore"
	"worldmark/internal/model"
)

// Store is an in-memory credential store for tests and for running
// without Redis.
type Store struct {
	mu          sync.RWMutex
	credentials map[string]string
	users       map[string]*model.User
}

// New creates a new in-memory credential store
func New() *Store {
	return &Store{
		credentials: make(map[string]string),
		users:       make(map[string]*model.User),
	}
}

// Ensure Store implements the interface
var _ credstore.Store = (*Store)(nil)

func (s *Store) SaveCredential(ctx context.Context, username, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[username] = hash
	return nil
}

func (s *Store) GetCredential(ctx context.Context, username string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.credentials[username]
	if !ok {
		return "", model.ErrUserNotFound
	}
	return hash, nil
}

func (s *Store) Exists(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.credentials[username]
	return ok, nil
}

func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[user.Username] = &u
	return nil
}

func (s *Store) GetUser(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	out := *u
	return &out, nil
}
