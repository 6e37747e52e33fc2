package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hospital-ms/portal/internal/core/ports"
)

// SlotStorage stores session slots as plain Redis string keys.
type SlotStorage struct {
	client *redis.Client
}

// NewSlotStorage wraps the given Redis client.
func NewSlotStorage(client *redis.Client) *SlotStorage {
	return &SlotStorage{client: client}
}

func (s *SlotStorage) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrSlotEmpty
		}
		return nil, fmt.Errorf("slot get: %w", err)
	}
	return b, nil
}

// Set writes key with a single SET; ttl <= 0 keeps it until deleted.
func (s *SlotStorage) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("slot set: %w", err)
	}
	return nil
}

func (s *SlotStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("slot delete: %w", err)
	}
	return nil
}
