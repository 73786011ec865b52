// Package id generates prefixed record identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Record prefixes. An ID reads as "<prefix>-<nanoid>", e.g. "book-V1StGXR8_Z5jdHi6B-myT".
const (
	PrefixBook    = "book"
	PrefixNote    = "note"
	PrefixUser    = "user"
	PrefixSession = "sess"
)

// Generate creates a prefixed unique ID using NanoID (21 characters, URL-safe alphabet).
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}
