// Package codec provides symmetric encryption of opaque session identifiers
// for transport inside HTTP cookies.
//
// The key is derived deterministically from an operator-supplied secret via
// SHA-256, so secrets do not need to be exactly 32 bytes. Each encryption
// uses a fresh random 16-byte IV, prepended to the ciphertext in hex with a
// ":" separator:
//
//	token, err := codec.Encrypt(sessionID, secret)
//	// token == "9f2c...:/...hex ciphertext..."
//
//	id, err := codec.Decrypt(token, secret)
//	// errors.Is(err, codec.ErrInvalidToken) on any malformed or
//	// tampered input
//
// AES-256-GCM is used so that decryption deterministically rejects any
// modified ciphertext instead of returning plausible-but-wrong plaintext.
package codec
