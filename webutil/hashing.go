package webutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// GenerateHash returns the SHA-256 digest of the input as a hex string.
// The session registry uses it to key sessions by token digest so raw
// bearer tokens are never held at rest.
func GenerateHash(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
