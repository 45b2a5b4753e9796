package codec

import "errors"

var (
	// ErrInvalidToken indicates the token could not be decrypted: a missing or
	// malformed IV segment, undecodable hex, or ciphertext rejected by the
	// cipher. Callers must treat this as "no valid session", never as a crash.
	ErrInvalidToken = errors.New("invalid or tampered token")

	// ErrNoSecret indicates an empty secret was supplied.
	ErrNoSecret = errors.New("secret is required")
)
