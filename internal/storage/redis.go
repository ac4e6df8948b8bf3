package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlot implements Slot as a single Redis string key.
type RedisSlot struct {
	client *redis.Client
	key    string
}

// NewRedisSlot wraps an existing client. key names the Redis key.
func NewRedisSlot(client *redis.Client, key string) *RedisSlot {
	if key == "" {
		key = SlotKey
	}
	return &RedisSlot{client: client, key: key}
}

// OpenRedisSlot connects using cfg and verifies the server with a ping.
func OpenRedisSlot(ctx context.Context, cfg RedisConfig) (*RedisSlot, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return NewRedisSlot(client, cfg.Key), nil
}

// Get reads the key. A missing key is ErrSlotEmpty.
func (s *RedisSlot) Get(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return data, nil
}

// Set overwrites the key without expiry.
func (s *RedisSlot) Set(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save slot: %w", err)
	}
	return nil
}

// Close closes the client.
func (s *RedisSlot) Close() error {
	return s.client.Close()
}
