package session

import "context"

// Store defines the persistence interface for session records.
// Implementations must handle concurrent access safely; Clean in particular
// may run concurrently with per-request reads and writes.
type Store interface {
	// Create persists a new record. Returns ErrDuplicateSession if a record
	// with the same ID already exists.
	Create(ctx context.Context, rec Record) error

	// Get returns the record for the given ID, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*Record, error)

	// Update replaces the record stored under id. Last write wins.
	Update(ctx context.Context, id string, rec Record) error

	// Delete removes the record. Deleting a non-existent ID is not an error.
	Delete(ctx context.Context, id string) error

	// Clean removes all expired records. Idempotent.
	Clean(ctx context.Context) error
}
