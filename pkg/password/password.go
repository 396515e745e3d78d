// Package password generates student credentials.
package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Length bounds for generated passwords.
const (
	MinLength = 4
	MaxLength = 50
)

// Common errors returned by Generate.
var (
	// ErrTooShort is returned when the requested length cannot hold one
	// character of each required class.
	ErrTooShort = errors.New("password length must be at least 4")

	// ErrTooLong is returned when the requested length exceeds MaxLength.
	ErrTooLong = errors.New("password length must not exceed 50")
)

const (
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars = "0123456789"
	allChars   = upperChars + lowerChars + digitChars
)

// Generate returns a random alphanumeric password of the given length
// containing at least one uppercase letter, one lowercase letter, and
// one digit. Randomness comes from crypto/rand.
func Generate(length int) (string, error) {
	if length < MinLength {
		return "", ErrTooShort
	}
	if length > MaxLength {
		return "", ErrTooLong
	}

	chars := make([]byte, 0, length)
	for _, pool := range []string{upperChars, lowerChars, digitChars} {
		c, err := pick(pool)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := pick(allChars)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	if err := shuffle(chars); err != nil {
		return "", err
	}
	return string(chars), nil
}

// Valid reports whether s contains at least one uppercase letter, one
// lowercase letter, and one digit.
func Valid(s string) bool {
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

func pick(pool string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
	if err != nil {
		return 0, fmt.Errorf("failed to read random source: %w", err)
	}
	return pool[n.Int64()], nil
}

func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("failed to read random source: %w", err)
		}
		j := n.Int64()
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
