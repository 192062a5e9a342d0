// Package cache holds the shared query-result cache. List endpoints read
// through it and every admin mutation invalidates the owning entity's keys,
// so the next read always refetches from Postgres instead of patching a
// cached result in place.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

// ErrMiss is returned when the requested key has no cached value.
var ErrMiss = fmt.Errorf("cache: miss")

// Store is a redis-backed query cache keyed by entity and filter. A nil
// redis client degrades every operation to a miss, so callers never need
// to special-case a disabled cache.
type Store struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *logging.Logger

	// dependents maps an entity to the composite entities assembled from
	// it. Registered during wiring, before any traffic, so no lock.
	dependents map[string][]string
}

// New creates a query cache. ttl bounds staleness if an invalidation is
// ever lost; zero means entries live until invalidated.
func New(redisClient *redis.Client, ttl time.Duration, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{redis: redisClient, ttl: ttl, logger: logger}
}

// Enabled reports whether a backing redis client is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.redis != nil
}

func (s *Store) key(entity, filter string) string {
	if filter == "" {
		filter = "all"
	}
	return fmt.Sprintf("query:%s:%s", entity, filter)
}

func (s *Store) setKey(entity string) string {
	return fmt.Sprintf("query-keys:%s", entity)
}

// Get returns the cached payload for entity+filter, or ErrMiss.
func (s *Store) Get(ctx context.Context, entity, filter string) ([]byte, error) {
	if !s.Enabled() {
		return nil, ErrMiss
	}
	data, err := s.redis.Get(ctx, s.key(entity, filter)).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", entity, err)
	}
	return data, nil
}

// Set stores a query result and records its key in the entity's key set so
// Invalidate can discard every filter variant at once.
func (s *Store) Set(ctx context.Context, entity, filter string, payload []byte) error {
	if !s.Enabled() {
		return nil
	}
	key := s.key(entity, filter)
	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, key, payload, s.ttl)
	pipe.SAdd(ctx, s.setKey(entity), key)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.setKey(entity), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache: set %s: %w", entity, err)
	}
	return nil
}

// DependOn records that the composite entity is assembled from the given
// source entities, so invalidating a source also discards the composite.
func (s *Store) DependOn(composite string, sources ...string) {
	if s == nil {
		return
	}
	if s.dependents == nil {
		s.dependents = make(map[string][]string)
	}
	for _, src := range sources {
		s.dependents[src] = append(s.dependents[src], composite)
	}
}

// Invalidate discards every cached query for the entity, plus any
// composite entities registered as depending on it.
func (s *Store) Invalidate(ctx context.Context, entity string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.drop(ctx, entity); err != nil {
		return err
	}
	for _, composite := range s.dependents[entity] {
		if err := s.drop(ctx, composite); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) drop(ctx context.Context, entity string) error {
	keys, err := s.redis.SMembers(ctx, s.setKey(entity)).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("cache: invalidate %s: %w", entity, err)
	}
	keys = append(keys, s.setKey(entity))
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache: invalidate %s: %w", entity, err)
	}
	return nil
}

// InvalidateQuietly invalidates and logs instead of returning an error. A
// failed invalidation must never fail the mutation that triggered it.
func (s *Store) InvalidateQuietly(ctx context.Context, entity string) {
	if err := s.Invalidate(ctx, entity); err != nil {
		s.logger.Warn("cache invalidation failed", "entity", entity, "error", err)
	}
}
