package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// tokenBytes is the entropy of a raw API token.
const tokenBytes = 32

// GenerateToken returns a fresh API token and the hash to store for it.
// Only the hash is persisted; the raw token is shown to the user once.
func GenerateToken() (raw, hash string, err error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("auth: generate token: %w", err)
	}
	raw = "sk_" + hex.EncodeToString(buf)
	return raw, HashToken(raw), nil
}

// HashToken derives the stored lookup hash for a raw token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
