package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_ZeroAtIdentity(t *testing.T) {
	p := Point{Lat: 56.9496, Lon: 24.1052}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_Symmetric(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
	}{
		{"riga-tallinn", Point{56.9496, 24.1052}, Point{59.4370, 24.7536}},
		{"across equator", Point{-10, 20}, Point{10, -20}},
		{"antimeridian", Point{0, 179.9}, Point{0, -179.9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, Distance(tt.a, tt.b), Distance(tt.b, tt.a), 1e-9)
		})
	}
}

func TestDistance_KnownValues(t *testing.T) {
	// Riga to Tallinn is roughly 280 km as the crow flies.
	riga := Point{56.9496, 24.1052}
	tallinn := Point{59.4370, 24.7536}
	d := Distance(riga, tallinn)
	assert.InDelta(t, 279, d, 3)

	// One degree of latitude is about 111.19 km.
	d = Distance(Point{0, 0}, Point{1, 0})
	assert.InDelta(t, 111.19, d, 0.1)
}
