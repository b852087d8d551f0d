// Package id generates short prefixed identifiers for log correlation.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// alphabet omits look-alike characters so IDs are easy to grep and read back.
const alphabet = "23456789abcdefghjkmnpqrstuvwxyz"

// Length is the number of random characters after the prefix.
const Length = 12

// Generate creates a prefixed ID using NanoID.
// Format: prefix-nanoid (e.g., "load-k7q2m9xw4bhd").
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.Generate(alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
