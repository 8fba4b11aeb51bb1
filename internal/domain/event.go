package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Source identifies the origin of a normalized event.
type Source string

const (
	SourceProvider    Source = "provider"
	SourceSupabase    Source = "supabase"
	SourceExternalAPI Source = "external-api"
)

// placeholderName is used when a source record carries no usable title.
const placeholderName = "Untitled event"

// Venue is the normalized location of an event. Address is always a string
// (possibly empty), never absent, so text search stays safe downstream.
// Lat/Lon are nil when the source carries no coordinates; 0 is a valid
// coordinate (equator / prime meridian).
type Venue struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// Event is the common shape all source adapters produce.
// swagger:model Event
type Event struct {
	ID            string     `json:"id"`
	Source        Source     `json:"source"`
	Name          string     `json:"name"`
	URL           string     `json:"url,omitempty"`
	Images        []string   `json:"images,omitempty"`
	Start         *time.Time `json:"start,omitempty"`
	End           *time.Time `json:"end,omitempty"`
	Category      string     `json:"category,omitempty"`
	Venue         Venue      `json:"venue"`
	FeaturedUntil *time.Time `json:"featured_until,omitempty"`
}

// NewEvent returns an Event with normalization invariants applied: the name
// falls back to a placeholder and the category is lowercased.
func NewEvent(id string, source Source, name string) *Event {
	name = strings.TrimSpace(name)
	if name == "" {
		name = placeholderName
	}
	return &Event{ID: id, Source: source, Name: name}
}

// FeaturedActive reports whether the event's promoted visibility window is
// still open at the given time.
func (e *Event) FeaturedActive(now time.Time) bool {
	return e.FeaturedUntil != nil && now.Before(*e.FeaturedUntil)
}

// SoftKey derives the duplicate-detection key: lowercased trimmed name,
// start truncated to the minute, and the whitespace-collapsed lowercased
// address, joined by "__". Events with equal soft keys are treated as
// near-duplicates across sources.
func (e *Event) SoftKey() string {
	name := strings.ToLower(strings.TrimSpace(e.Name))
	start := ""
	if e.Start != nil {
		start = e.Start.Truncate(time.Minute).UTC().Format("2006-01-02T15:04")
	}
	addr := strings.ToLower(strings.Join(strings.Fields(e.Venue.Address), " "))
	return name + "__" + start + "__" + addr
}

// JoinAddress builds a comma-separated address from its parts, dropping
// empty ones. Always returns a string, possibly empty.
func JoinAddress(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// EventSource fetches raw records from a backing store and maps them into
// normalized events. Implementations must soft-fail on missing configuration
// (empty result, nil error) and skip individually malformed records.
type EventSource interface {
	Name() string
	Fetch(ctx context.Context) ([]*Event, error)
}

// SearchResult is one page of matched events plus the filtered total.
// swagger:model SearchResult
type SearchResult struct {
	Items []*Event `json:"items"`
	Total int      `json:"total"`
}

// DiscoveryService merges events from all sources, deduplicates, filters,
// and paginates.
type DiscoveryService interface {
	Search(ctx context.Context, opts MatcherOptions, page PaginationParams) (*SearchResult, error)
}
