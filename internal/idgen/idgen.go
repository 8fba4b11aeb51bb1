// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// HoldPrefix is prepended to hold identifiers.
const HoldPrefix = "hold-"

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	length   = 12
)

// NewHoldID returns a fresh hold identifier, e.g. "hold-x1k9q2m4p7ab".
func NewHoldID() (string, error) {
	id, err := nanoid.Generate(alphabet, length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return HoldPrefix + id, nil
}
