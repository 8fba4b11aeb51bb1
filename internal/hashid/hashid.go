// Package hashid derives short, stable identifiers from event attributes.
// Source records without an ID of their own get the same derived ID on every
// fetch, keeping pagination and dedup stable across requests.
package hashid

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Derive returns a deterministic 20-hex-character ID for the given parts.
// The same parts always produce the same ID; order matters.
func Derive(parts ...string) string {
	sum := blake2b.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:10])
}
