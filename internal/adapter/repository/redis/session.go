package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vulnbank/vulnbank/internal/domain"
)

// SessionStore implements usecase.SessionStore using Redis.
type SessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

// Bind associates a username with a session id.
func (s *SessionStore) Bind(ctx context.Context, sessionID, username string) error {
	return s.client.Set(ctx, s.prefix+sessionID, username, s.ttl).Err()
}

// UsernameBySession resolves the username bound to a session id.
func (s *SessionStore) UsernameBySession(ctx context.Context, sessionID string) (string, error) {
	username, err := s.client.Get(ctx, s.prefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrAccountNotFound
		}

		return "", err
	}

	return username, nil
}
