package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

// idSize is the number of random bytes in a session identifier.
// 18 bytes (144 bits) hex-encoded keeps collision probability negligible
// at realistic session volumes.
const idSize = 18

// Record is the persisted unit of session state. UserID never changes after
// creation; only ExpiresAt is mutated, by the extension path.
type Record struct {
	ID        string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the record's expiry has passed.
func (r Record) IsExpired() bool {
	return !r.ExpiresAt.After(time.Now())
}

// SerializeUserFunc maps a full identity object to the compact identifier
// stored in the session record. Supplied by the embedding application.
type SerializeUserFunc func(ctx context.Context, user any) (string, error)

// DeserializeUserFunc maps a stored user identifier back to the identity
// attached to the request. Returning (nil, nil) means "no identity" and is
// not an error.
type DeserializeUserFunc func(ctx context.Context, userID string) (any, error)

// newID generates a cryptographically random session identifier.
func newID() (string, error) {
	b := make([]byte, idSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
