package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEvent_NamePlaceholder(t *testing.T) {
	e := NewEvent("provider:1", SourceProvider, "   ")
	assert.Equal(t, "Untitled event", e.Name)

	e = NewEvent("provider:2", SourceProvider, " Jazz Night ")
	assert.Equal(t, "Jazz Night", e.Name)
}

func TestJoinAddress(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"all parts", []string{"Brivibas iela 1", "Riga", "Latvia"}, "Brivibas iela 1, Riga, Latvia"},
		{"empty parts dropped", []string{"", "Riga", "  ", "Latvia"}, "Riga, Latvia"},
		{"all empty", []string{"", " "}, ""},
		{"no parts", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinAddress(tt.parts...))
		})
	}
}

func TestEvent_SoftKey_EqualAcrossSources(t *testing.T) {
	start := time.Date(2026, 9, 12, 19, 30, 45, 0, time.UTC)
	a := &Event{
		ID:     "provider:1",
		Source: SourceProvider,
		Name:   "Koncerts Mezaparkā",
		Start:  &start,
		Venue:  Venue{Address: "Ostas prospekts 11, Riga"},
	}
	startSameMinute := time.Date(2026, 9, 12, 19, 30, 2, 0, time.UTC)
	b := &Event{
		ID:     "supabase:abc",
		Source: SourceSupabase,
		Name:   "  KONCERTS MEZAPARKĀ ",
		Start:  &startSameMinute,
		Venue:  Venue{Address: "Ostas   prospekts 11,  Riga"},
	}
	assert.Equal(t, a.SoftKey(), b.SoftKey())
}

func TestEvent_SoftKey_DifferentStartMinute(t *testing.T) {
	s1 := time.Date(2026, 9, 12, 19, 30, 0, 0, time.UTC)
	s2 := time.Date(2026, 9, 12, 19, 31, 0, 0, time.UTC)
	a := &Event{Name: "Show", Start: &s1}
	b := &Event{Name: "Show", Start: &s2}
	assert.NotEqual(t, a.SoftKey(), b.SoftKey())
}

func TestEvent_SoftKey_NilStart(t *testing.T) {
	e := &Event{Name: "Open Air", Venue: Venue{Address: "Central Park"}}
	assert.Equal(t, "open air__"+"__central park", e.SoftKey())
}

func TestEvent_FeaturedActive(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.False(t, (&Event{}).FeaturedActive(now))
	assert.True(t, (&Event{FeaturedUntil: &future}).FeaturedActive(now))
	assert.False(t, (&Event{FeaturedUntil: &past}).FeaturedActive(now))
}
