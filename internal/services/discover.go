package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"neargo/internal/domain"
)

type discoveryService struct {
	sources []domain.EventSource
	logger  *slog.Logger
	now     func() time.Time
}

// NewDiscoveryService creates a DiscoveryService over the given sources.
// Source order matters: when two sources produce near-duplicate events, the
// earlier source wins the dedup pass.
func NewDiscoveryService(logger *slog.Logger, sources ...domain.EventSource) domain.DiscoveryService {
	return &discoveryService{
		sources: sources,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *discoveryService) Search(ctx context.Context, opts domain.MatcherOptions, page domain.PaginationParams) (*domain.SearchResult, error) {
	merged := s.merge(ctx)
	matcher := domain.NewMatcher(opts)

	filtered := make([]*domain.Event, 0, len(merged))
	for _, e := range merged {
		if matcher.Matches(e) {
			filtered = append(filtered, e)
		}
	}

	// Promoted events first, then by start time; events without a start go
	// last. The sort is stable so source order breaks remaining ties.
	now := s.now()
	sort.SliceStable(filtered, func(i, j int) bool {
		fi, fj := filtered[i].FeaturedActive(now), filtered[j].FeaturedActive(now)
		if fi != fj {
			return fi
		}
		si, sj := filtered[i].Start, filtered[j].Start
		switch {
		case si == nil && sj == nil:
			return false
		case si == nil:
			return false
		case sj == nil:
			return true
		default:
			return si.Before(*sj)
		}
	})

	return &domain.SearchResult{
		Items: paginate(filtered, page),
		Total: len(filtered),
	}, nil
}

// merge fetches every source and deduplicates near-identical events by soft
// key, first occurrence winning. A failing source degrades to empty rather
// than failing the whole search.
func (s *discoveryService) merge(ctx context.Context) []*domain.Event {
	var merged []*domain.Event
	seen := make(map[string]struct{})
	for _, src := range s.sources {
		events, err := src.Fetch(ctx)
		if err != nil {
			s.logger.Warn("source fetch failed, continuing without it", "source", src.Name(), "err", err)
			continue
		}
		for _, e := range events {
			key := e.SoftKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, e)
		}
	}
	return merged
}

func paginate(events []*domain.Event, page domain.PaginationParams) []*domain.Event {
	offset := page.Offset()
	if offset >= len(events) {
		return []*domain.Event{}
	}
	end := offset + page.Size
	if page.Size <= 0 || end > len(events) {
		end = len(events)
	}
	return events[offset:end]
}
