// Package providers reads the curated provider feed: a JSON file of event
// records maintained outside the database.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"neargo/internal/domain"
	"neargo/internal/hashid"
)

// Source reads provider events from a JSON file. A missing or unconfigured
// file is a soft failure: Fetch returns an empty slice, never an error, so
// the aggregator keeps serving the other sources.
type Source struct {
	path   string
	logger *slog.Logger
}

func New(path string, logger *slog.Logger) *Source {
	return &Source{path: path, logger: logger}
}

func (s *Source) Name() string { return string(domain.SourceProvider) }

// record is the loose provider feed shape. Field names vary across feed
// generations (lat/venueLat, city/city2), so everything is optional and
// normalization picks the first populated variant.
type record struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Image    string   `json:"image"`
	Images   []string `json:"images"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Category string   `json:"category"`

	Venue    string   `json:"venue"`
	Address  string   `json:"address"`
	City     string   `json:"city"`
	City2    string   `json:"city2"`
	Country  string   `json:"country"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	VenueLat *float64 `json:"venueLat"`
	VenueLon *float64 `json:"venueLon"`

	FeaturedUntil string `json:"featuredUntil"`
}

func (s *Source) Fetch(ctx context.Context) ([]*domain.Event, error) {
	if s.path == "" {
		s.logger.Debug("providers file not configured, skipping source")
		return nil, nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("providers file missing, skipping source", "path", s.path)
			return nil, nil
		}
		s.logger.Warn("providers file unreadable, skipping source", "path", s.path, "err", err)
		return nil, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		s.logger.Warn("providers file is not a JSON array, skipping source", "path", s.path, "err", err)
		return nil, nil
	}

	events := make([]*domain.Event, 0, len(raws))
	for i, raw := range raws {
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			s.logger.Warn("skipping malformed provider record", "index", i, "err", err)
			continue
		}
		events = append(events, normalize(&rec))
	}
	return events, nil
}

// normalize maps one provider record into the common event shape.
func normalize(rec *record) *domain.Event {
	name := rec.Name
	if name == "" {
		name = rec.Title
	}
	start := parseTime(rec.Start)
	address := domain.JoinAddress(rec.Venue, firstNonEmpty(rec.City, rec.City2), rec.Country)

	id := rec.ID
	if id == "" {
		id = hashid.Derive(name, rec.Start, address)
	}

	e := domain.NewEvent("provider:"+id, domain.SourceProvider, name)
	e.URL = rec.URL
	e.Start = start
	e.End = parseTime(rec.End)
	e.Category = strings.ToLower(strings.TrimSpace(rec.Category))
	e.FeaturedUntil = parseTime(rec.FeaturedUntil)
	e.Venue = domain.Venue{
		Name:    rec.Venue,
		Address: address,
		Lat:     firstCoord(rec.Lat, rec.VenueLat),
		Lon:     firstCoord(rec.Lon, rec.VenueLon),
	}
	if len(rec.Images) > 0 {
		e.Images = rec.Images
	} else if rec.Image != "" {
		e.Images = []string{rec.Image}
	}
	return e
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstCoord(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// parseTime accepts RFC3339 and the date-only form the older feed used.
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
