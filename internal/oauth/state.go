package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "oauth-state:"

var ErrInvalidState = errors.New("invalid oauth state")

// StateStore issues single-use CSRF states for the authorization redirect.
type StateStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewStateStore(client redis.UniversalClient, ttl time.Duration) *StateStore {
	return &StateStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *StateStore) Issue(ctx context.Context) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	state := base64.RawURLEncoding.EncodeToString(b)

	if err := s.client.Set(ctx, stateKeyPrefix+state, 1, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store state: %w", err)
	}

	return state, nil
}

// Consume succeeds at most once per issued state.
func (s *StateStore) Consume(ctx context.Context, state string) error {
	if state == "" {
		return ErrInvalidState
	}

	n, err := s.client.Del(ctx, stateKeyPrefix+state).Result()
	if err != nil {
		return fmt.Errorf("consume state: %w", err)
	}
	if n == 0 {
		return ErrInvalidState
	}

	return nil
}
