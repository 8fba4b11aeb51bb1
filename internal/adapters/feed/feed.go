// Package feed pulls events from an optional external HTTP API that returns
// a JSON array of event records.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"neargo/internal/domain"
	"neargo/internal/hashid"
)

// Source fetches events from a configured URL. An empty URL disables the
// source; fetch or decode failures degrade to an empty result so the
// aggregator keeps serving the other sources.
type Source struct {
	client *http.Client
	url    string
	logger *slog.Logger
}

func New(client *http.Client, url string, logger *slog.Logger) *Source {
	if client == nil {
		client = http.DefaultClient
	}
	return &Source{client: client, url: url, logger: logger}
}

func (s *Source) Name() string { return string(domain.SourceExternalAPI) }

type feedEvent struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Images   []string `json:"images"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Category string   `json:"category"`
	Venue    struct {
		Name    string   `json:"name"`
		Address string   `json:"address"`
		City    string   `json:"city"`
		Country string   `json:"country"`
		Lat     *float64 `json:"lat"`
		Lon     *float64 `json:"lon"`
	} `json:"venue"`
}

func (s *Source) Fetch(ctx context.Context) ([]*domain.Event, error) {
	if s.url == "" {
		return nil, nil
	}
	records, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("external feed fetch failed, skipping source", "url", s.url, "err", err)
		return nil, nil
	}

	events := make([]*domain.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, normalize(&rec))
	}
	return events, nil
}

func (s *Source) fetch(ctx context.Context) ([]feedEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch external feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("external feed returned status: %d", resp.StatusCode)
	}

	var records []feedEvent
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode external feed: %w", err)
	}
	return records, nil
}

func normalize(rec *feedEvent) *domain.Event {
	address := domain.JoinAddress(rec.Venue.Address, rec.Venue.City, rec.Venue.Country)

	id := rec.ID
	if id == "" {
		id = hashid.Derive(rec.Name, rec.Start, address)
	}

	e := domain.NewEvent("external-api:"+id, domain.SourceExternalAPI, rec.Name)
	e.URL = rec.URL
	e.Images = rec.Images
	e.Start = parseTime(rec.Start)
	e.End = parseTime(rec.End)
	e.Category = strings.ToLower(strings.TrimSpace(rec.Category))
	e.Venue = domain.Venue{
		Name:    rec.Venue.Name,
		Address: address,
		Lat:     rec.Venue.Lat,
		Lon:     rec.Venue.Lon,
	}
	return e
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}
