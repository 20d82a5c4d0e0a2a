// Package id generates short, URL-safe identifiers with type prefixes,
// similar to Stripe-style IDs (for example usr_Kx9mP2nQ8rT5vW3y).
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// base62 alphabet without ambiguous characters removed - we keep full
	// alphabet for maximum entropy
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for the random part of the ID
	DefaultLength = 16
)

// Prefixes for the different entity types.
const (
	PrefixUser        = "usr"
	PrefixBundle      = "bun"
	PrefixMessage     = "msg"
	PrefixTransaction = "txn"
)

// Generate creates a new random ID with the given prefix.
// Example: Generate("usr") returns something like "usr_Kx9mP2nQ8rT5vW3y"
func Generate(prefix string) (string, error) {
	return GenerateWithLength(prefix, DefaultLength)
}

// GenerateWithLength creates a new random ID with the given prefix and length.
func GenerateWithLength(prefix string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", length)
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[n.Int64()]
	}

	if prefix == "" {
		return string(result), nil
	}
	return fmt.Sprintf("%s_%s", prefix, string(result)), nil
}

// MustGenerate is like Generate but panics on error. Only use during
// initialization or in tests.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
