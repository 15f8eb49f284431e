package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "wizard:"

var ErrNoDraft = errors.New("wizard draft not found")

type Store interface {
	Get(ctx context.Context, userID uuid.UUID) (*State, error)
	Save(ctx context.Context, userID uuid.UUID, state *State) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// RedisStore keeps drafts as JSON with a sliding TTL refreshed on every save.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func key(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}

func (s *RedisStore) Get(ctx context.Context, userID uuid.UUID) (*State, error) {
	data, err := s.client.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoDraft
		}
		return nil, fmt.Errorf("get wizard draft: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal wizard draft: %w", err)
	}

	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, userID uuid.UUID, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal wizard draft: %w", err)
	}

	if err := s.client.Set(ctx, key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save wizard draft: %w", err)
	}

	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("delete wizard draft: %w", err)
	}
	return nil
}
