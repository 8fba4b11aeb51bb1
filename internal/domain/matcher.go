package domain

import (
	"strings"

	"neargo/internal/geo"
)

// MatcherOptions describes the filters applied to normalized events.
// Zero-value options match every event.
type MatcherOptions struct {
	// Query is matched case-insensitively as a substring of the event name,
	// venue name, and address.
	Query string
	// Category must equal the event category exactly (both lowercased).
	Category string
	// Center enables the radius filter. Events without coordinates are not
	// filtered out by radius; they simply skip the check.
	Center   *geo.Point
	RadiusKm float64
}

// Matcher is a compiled predicate over normalized events. All filters are
// conjunctive.
type Matcher struct {
	query    string
	category string
	center   *geo.Point
	radiusKm float64
}

// NewMatcher normalizes the options once so Matches stays cheap per event.
func NewMatcher(opts MatcherOptions) *Matcher {
	return &Matcher{
		query:    strings.ToLower(strings.TrimSpace(opts.Query)),
		category: strings.ToLower(strings.TrimSpace(opts.Category)),
		center:   opts.Center,
		radiusKm: opts.RadiusKm,
	}
}

// Matches reports whether the event passes the text, category, and radius
// filters. A filter that is not set always passes.
func (m *Matcher) Matches(e *Event) bool {
	if e == nil {
		return false
	}
	if m.query != "" {
		haystack := strings.ToLower(e.Name + " " + e.Venue.Name + " " + e.Venue.Address)
		if !strings.Contains(haystack, m.query) {
			return false
		}
	}
	if m.category != "" {
		if strings.ToLower(e.Category) != m.category {
			return false
		}
	}
	if m.center != nil && e.Venue.Lat != nil && e.Venue.Lon != nil {
		d := geo.Distance(*m.center, geo.Point{Lat: *e.Venue.Lat, Lon: *e.Venue.Lon})
		if d > m.radiusKm {
			return false
		}
	}
	return true
}
