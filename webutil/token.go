package webutil

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateRandomToken returns a random URL-safe string of exactly
// length characters. The alphabet is base64url without padding, so
// tokens are safe in paths, query strings, and filenames.
func GenerateRandomToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", length)
	}

	// base64 yields 4 characters per 3 bytes; read a little extra so the
	// encoded string can always be trimmed down to the requested length.
	raw := make([]byte, (length*3)/4+3)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw)[:length], nil
}
