package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const tokenSize = 20

// NewOneTimeToken generates a random confirmation/reset token and returns the
// plaintext (mailed to the user) together with its SHA-256 hex digest (the
// only form ever persisted).
func NewOneTimeToken() (plain, hash string, err error) {
	b := make([]byte, tokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}

	plain = hex.EncodeToString(b)
	return plain, HashToken(plain), nil
}

// HashToken returns the SHA-256 hex digest of a token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
