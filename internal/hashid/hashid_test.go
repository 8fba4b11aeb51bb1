package hashid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive_Deterministic(t *testing.T) {
	a := Derive("Jazz Night", "2026-09-12T19:30", "Ostas prospekts 11")
	b := Derive("Jazz Night", "2026-09-12T19:30", "Ostas prospekts 11")
	assert.Equal(t, a, b)
	assert.Len(t, a, 20)
}

func TestDerive_OrderAndBoundariesMatter(t *testing.T) {
	assert.NotEqual(t, Derive("a", "b"), Derive("b", "a"))
	// "ab"+"c" must not collide with "a"+"bc".
	assert.NotEqual(t, Derive("ab", "c"), Derive("a", "bc"))
}
