package utils

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	defaultPBKDF2Iterations = 120_000
	passwordKeyLength       = 32
	saltLength              = 16
)

// PasswordHasher derives salted PBKDF2-HMAC-SHA512 digests. Salts and digests are hex strings.
type PasswordHasher struct {
	Iterations int
}

// NewPasswordHasher returns a hasher with the production iteration count.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{Iterations: defaultPBKDF2Iterations}
}

// NewSalt returns 16 random bytes, hex encoded.
func (h *PasswordHasher) NewSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(salt), nil
}

// Hash derives the digest of password under the hex encoded salt.
func (h *PasswordHasher) Hash(password, salt string) (string, error) {
	rawSalt, err := hex.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), rawSalt, h.Iterations, passwordKeyLength, sha512.New)
	return hex.EncodeToString(key), nil
}

// Verify compares in constant time.
func (h *PasswordHasher) Verify(password, digest, salt string) bool {
	computed, err := h.Hash(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
