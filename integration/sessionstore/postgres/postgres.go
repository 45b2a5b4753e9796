package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fluidauth/fluidauth/core/session"
	"github.com/fluidauth/fluidauth/integration/database/pg"
)

const defaultTable = "fluidauth_sessions"

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// Schema is the DDL for the default session table. Applications with their
// own migration tooling embed it there; Migrate applies it directly.
const Schema = `
CREATE TABLE IF NOT EXISTS fluidauth_sessions (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS fluidauth_sessions_expires_at_idx
    ON fluidauth_sessions (expires_at);
`

// querier is the subset of pgxpool.Pool and pgx.Tx the store needs.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is a PostgreSQL-backed session store.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

// Option configures a Store.
type Option func(*Store)

// WithTable overrides the session table name (default "fluidauth_sessions").
func WithTable(table string) Option {
	return func(s *Store) { s.table = table }
}

// New creates a PostgreSQL-backed session store.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{pool: pool, table: defaultTable}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate applies the session table schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("postgres: apply session schema: %w", err)
	}
	return nil
}

// db joins a transaction threaded through the context, falling back to the pool.
func (s *Store) db(ctx context.Context) querier {
	if tx, ok := pg.TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

// Create persists a new record. The primary key rejects duplicates.
func (s *Store) Create(ctx context.Context, rec session.Record) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (id, user_id, expires_at) VALUES ($1, $2, $3)`, s.table)

	_, err := s.db(ctx).Exec(ctx, query, rec.ID, rec.UserID, rec.ExpiresAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return session.ErrDuplicateSession
	}
	if err != nil {
		return fmt.Errorf("postgres: create record: %w", err)
	}
	return nil
}

// Get returns the record with the given ID, or (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, id string) (*session.Record, error) {
	query := fmt.Sprintf(
		`SELECT id, user_id, expires_at FROM %s WHERE id = $1`, s.table)

	var rec session.Record
	err := s.db(ctx).QueryRow(ctx, query, id).Scan(&rec.ID, &rec.UserID, &rec.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get record: %w", err)
	}
	return &rec, nil
}

// Update replaces the record under id, creating it when absent.
func (s *Store) Update(ctx context.Context, id string, rec session.Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET user_id = $2, expires_at = $3`, s.table)

	if _, err := s.db(ctx).Exec(ctx, query, id, rec.UserID, rec.ExpiresAt); err != nil {
		return fmt.Errorf("postgres: update record: %w", err)
	}
	return nil
}

// Delete removes the record. Deleting an absent record is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)

	if _, err := s.db(ctx).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("postgres: delete record: %w", err)
	}
	return nil
}

// Clean removes every expired record.
func (s *Store) Clean(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE expires_at <= now()`, s.table)

	if _, err := s.db(ctx).Exec(ctx, query); err != nil {
		return fmt.Errorf("postgres: clean records: %w", err)
	}
	return nil
}

var _ session.Store = (*Store)(nil)
