package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fluidauth/fluidauth/core/session"
)

const defaultPrefix = "session:"

// Store is a Redis-backed session store. Records are stored as JSON under a
// prefixed key with a TTL matching the record expiry, so Redis evicts expired
// sessions on its own.
type Store struct {
	client *redis.Client
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix overrides the key prefix (default "session:").
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New creates a Redis-backed session store.
func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

// Create persists a new record. SetNX enforces ID uniqueness atomically.
func (s *Store) Create(ctx context.Context, rec session.Record) error {
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redisstore: record already expired")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redisstore: marshal record: %w", err)
	}

	ok, err := s.client.SetNX(ctx, s.key(rec.ID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("redisstore: create record: %w", err)
	}
	if !ok {
		return session.ErrDuplicateSession
	}
	return nil
}

// Get returns the record with the given ID, or (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, id string) (*session.Record, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: get record: %w", err)
	}

	var rec session.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("redisstore: unmarshal record: %w", err)
	}
	return &rec, nil
}

// Update replaces the record under id, creating it when absent. A record
// updated to a past expiry is deleted instead of stored with a negative TTL.
func (s *Store) Update(ctx context.Context, id string, rec session.Record) error {
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, id)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redisstore: marshal record: %w", err)
	}

	if err := s.client.Set(ctx, s.key(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: update record: %w", err)
	}
	return nil
}

// Delete removes the record. Deleting an absent record is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redisstore: delete record: %w", err)
	}
	return nil
}

// Clean is a no-op: key TTLs already evict expired records.
func (s *Store) Clean(ctx context.Context) error {
	return nil
}

var _ session.Store = (*Store)(nil)
