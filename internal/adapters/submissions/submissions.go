// Package submissions reads user-submitted events stored as JSON blobs in
// the storage bucket and maps them into normalized events.
package submissions

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"neargo/internal/domain"
	"neargo/internal/hashid"
)

// Source lists submission blobs under a prefix, decodes each one, and signs
// image keys into time-limited URLs. Store errors on individual blobs skip
// that blob only.
type Source struct {
	store        domain.BlobStore
	prefix       string
	signedURLTTL time.Duration
	logger       *slog.Logger
}

func New(store domain.BlobStore, prefix string, signedURLTTL time.Duration, logger *slog.Logger) *Source {
	return &Source{store: store, prefix: prefix, signedURLTTL: signedURLTTL, logger: logger}
}

func (s *Source) Name() string { return string(domain.SourceSupabase) }

// submission is the stored blob shape. Submitters fill a form, so field
// names are stable, but older blobs used addr instead of address and
// latitude/longitude instead of lat/lon.
type submission struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	Images    []string `json:"imagePaths"`
	StartsAt  string   `json:"startsAt"`
	EndsAt    string   `json:"endsAt"`
	Category  string   `json:"category"`
	VenueName string   `json:"venueName"`
	Address   string   `json:"address"`
	Addr      string   `json:"addr"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	FeaturedUntil string `json:"featuredUntil"`
}

func (s *Source) Fetch(ctx context.Context) ([]*domain.Event, error) {
	if s.store == nil {
		return nil, nil
	}
	keys, err := s.store.List(ctx, s.prefix)
	if err != nil {
		s.logger.Warn("listing submissions failed, skipping source", "err", err)
		return nil, nil
	}

	events := make([]*domain.Event, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		data, err := s.store.Get(ctx, key)
		if err != nil {
			s.logger.Warn("skipping unreadable submission", "key", key, "err", err)
			continue
		}
		var sub submission
		if err := json.Unmarshal(data, &sub); err != nil {
			s.logger.Warn("skipping malformed submission", "key", key, "err", err)
			continue
		}
		events = append(events, s.normalize(ctx, key, &sub))
	}
	return events, nil
}

func (s *Source) normalize(ctx context.Context, key string, sub *submission) *domain.Event {
	address := domain.JoinAddress(coalesce(sub.Address, sub.Addr), sub.City, sub.Country)

	id := sub.ID
	if id == "" {
		id = hashid.Derive(sub.Title, sub.StartsAt, address)
	}

	e := domain.NewEvent("supabase:"+id, domain.SourceSupabase, sub.Title)
	e.URL = sub.URL
	e.Start = parseTime(sub.StartsAt)
	e.End = parseTime(sub.EndsAt)
	e.Category = strings.ToLower(strings.TrimSpace(sub.Category))
	e.FeaturedUntil = parseTime(sub.FeaturedUntil)
	e.Venue = domain.Venue{
		Name:    sub.VenueName,
		Address: address,
		Lat:     coalesceCoord(sub.Lat, sub.Latitude),
		Lon:     coalesceCoord(sub.Lon, sub.Longitude),
	}

	for _, img := range sub.Images {
		if img == "" {
			continue
		}
		url, err := s.store.SignedURL(ctx, img, s.signedURLTTL)
		if err != nil {
			s.logger.Warn("could not sign submission image", "key", key, "image", img, "err", err)
			continue
		}
		e.Images = append(e.Images, url)
	}
	return e
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func coalesceCoord(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
