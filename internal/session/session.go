// Package session tracks live sessions in Redis. A JWT alone cannot be
// revoked, so every issued token carries a session ID that must still exist
// here; logout deletes the key and the token dies with it.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"huddle/backend/internal/apperr"
	"huddle/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewClient initializes the Redis client from config. Only Addr is mandatory.
func NewClient(cfg *config.Config) *redis.Client {
	opts := &redis.Options{
		Addr: cfg.RedisAddr,
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	if cfg.RedisDB != 0 {
		opts.DB = cfg.RedisDB
	}
	return redis.NewClient(opts)
}

// Store is the registry of live sessions.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Create registers a session for the given user. The TTL matches the token
// lifetime so stale keys clean themselves up.
func (s *Store) Create(ctx context.Context, sessionID, userID string) error {
	return s.client.Set(ctx, s.key(sessionID), userID, s.ttl).Err()
}

// UserID resolves a session to its user. Returns Unauthorized when the
// session is missing or expired.
func (s *Store) UserID(ctx context.Context, sessionID string) (string, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperr.Unauthorized("session expired or logged out")
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Revoke deletes a session. Revoking a session that is already gone is not
// an error: the caller's goal is met either way.
func (s *Store) Revoke(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}
