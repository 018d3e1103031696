// Package redis provides a Redis-backed query cache so multiple
// carbondash replicas can share computed aggregates.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/carbondash/carbondash/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.QueryCache using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for cached entries.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached entries.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "carbondash:query:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(cacheKey string) string {
	return s.prefix + cacheKey
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the payload to Redis and records the key in a ZSET index
// scored by expiry time, so Keys can prune lazily.
func (s *Store) Save(ctx context.Context, cacheKey string, payload []byte) error {
	pipe := s.client.Pipeline()

	pipe.Set(ctx, s.key(cacheKey), payload, s.ttl)

	// Score = Now + TTL. With no TTL the entry never expires; park the
	// score far in the future.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: cacheKey,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the payload from Redis.
func (s *Store) Load(ctx context.Context, cacheKey string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(cacheKey)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// Delete removes a cached entry.
func (s *Store) Delete(ctx context.Context, cacheKey string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(cacheKey))
	pipe.ZRem(ctx, s.indexKey(), cacheKey)

	_, err := pipe.Exec(ctx)
	return err
}

// Keys returns the live cache keys, pruning expired index entries first.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	// ZREMRANGEBYSCORE drops index members whose entries already expired.
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired keys: %w", err)
	}

	keys, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// Flush removes every cached entry and the index. Called on dataset reload.
func (s *Store) Flush(ctx context.Context) error {
	keys, err := s.Keys(ctx)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, k := range keys {
		pipe.Del(ctx, s.key(k))
	}
	pipe.Del(ctx, s.indexKey())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
