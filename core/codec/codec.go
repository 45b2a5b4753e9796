package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
)

// ivSize is the initialization vector length in bytes. The IV is generated
// fresh for every encryption and travels with the ciphertext.
const ivSize = 16

// segmentSeparator joins the hex-encoded IV and ciphertext. Hex output never
// contains this character, so the two segments split unambiguously.
const segmentSeparator = ":"

// deriveKey maps an arbitrary operator-supplied secret onto a fixed-length
// AES-256 key. The one-way hash lets deployments use human-memorable secrets.
func deriveKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

// Encrypt encrypts plaintext with a key derived from secret and returns
// a token of the form "hex(iv):hex(ciphertext)". AES-256-GCM authenticates
// the ciphertext, so any tampering is detected on decryption.
func Encrypt(plaintext, secret string) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}

	block, err := aes.NewCipher(deriveKey(secret))
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return "", err
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nil, iv, []byte(plaintext), nil)
	return hex.EncodeToString(iv) + segmentSeparator + hex.EncodeToString(ciphertext), nil
}

// Decrypt is the exact inverse of Encrypt for the same secret.
// It returns ErrInvalidToken when the IV segment is absent, malformed, or
// the wrong length, or when the cipher rejects the ciphertext (tampering,
// wrong secret, corrupted cookie value).
func Decrypt(token, secret string) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}

	ivPart, ctPart, found := strings.Cut(token, segmentSeparator)
	if !found {
		return "", ErrInvalidToken
	}

	iv, err := hex.DecodeString(ivPart)
	if err != nil || len(iv) != ivSize {
		return "", ErrInvalidToken
	}

	ciphertext, err := hex.DecodeString(ctPart)
	if err != nil {
		return "", ErrInvalidToken
	}

	block, err := aes.NewCipher(deriveKey(secret))
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidToken
	}

	return string(plaintext), nil
}
