package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// Suffix generates a random lowercase hex suffix of the given length,
// used to uniquify resource names like projects and probe IDs.
// Length is clamped to the range 1..15.
func Suffix(length int) string {
	if length < 1 {
		length = 1
	}
	if length > 15 {
		length = 15
	}
	b := make([]byte, (length+1)/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)[:length]
}

// Request generates a UUID v4 correlation ID, attached to outbound API
// calls so a failed call can be traced on the platform side.
func Request() string {
	return uuid.New().String()
}
