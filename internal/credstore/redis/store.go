package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"worldmark/internal/credstore"
	"worldmark/internal/model"
)

// Store is a Redis-backed implementation of the credential store
type Store struct {
	client *redis.Client
}

// New creates a new Redis credential store
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Store{client: client}, nil
}

// NewWithClient creates a Redis credential store with an existing client (for testing)
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ credstore.Store = (*Store)(nil)

func (s *Store) SaveCredential(ctx context.Context, username, hash string) error {
	return s.client.Set(ctx, authKey(username), hash, 0).Err()
}

func (s *Store) GetCredential(ctx context.Context, username string) (string, error) {
	hash, err := s.client.Get(ctx, authKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrUserNotFound
		}
		return "", err
	}
	return hash, nil
}

func (s *Store) Exists(ctx context.Context, username string) (bool, error) {
	n, err := s.client.Exists(ctx, authKey(username)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, dataKey(user.Username), data, 0).Err()
}

func (s *Store) GetUser(ctx context.Context, username string) (*model.User, error) {
	data, err := s.client.Get(ctx, dataKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user data: %w", err)
	}
	user.Username = username
	return &user, nil
}
