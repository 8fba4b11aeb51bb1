package providers

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neargo/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "providers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSource_Fetch_MissingConfigIsSoftFailure(t *testing.T) {
	src := New("", testLogger())
	events, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)

	src = New("/nonexistent/providers.json", testLogger())
	events, err = src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSource_Fetch_Normalizes(t *testing.T) {
	path := writeFeed(t, `[
		{
			"id": "42",
			"name": "Jazz Night",
			"url": "https://example.com/jazz",
			"image": "jazz.jpg",
			"start": "2026-09-12T19:30:00Z",
			"category": "Koncerti",
			"venue": "Arena",
			"city": "Riga",
			"country": "Latvia",
			"lat": 56.9496,
			"lon": 24.1052
		},
		{
			"title": "Old Feed Event",
			"start": "2026-10-01",
			"city2": "Liepaja",
			"venueLat": 56.5047,
			"venueLon": 21.0108
		}
	]`)

	events, err := New(path, testLogger()).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	e := events[0]
	assert.Equal(t, "provider:42", e.ID)
	assert.Equal(t, domain.SourceProvider, e.Source)
	assert.Equal(t, "Jazz Night", e.Name)
	assert.Equal(t, "koncerti", e.Category)
	assert.Equal(t, "Arena, Riga, Latvia", e.Venue.Address)
	assert.Equal(t, []string{"jazz.jpg"}, e.Images)
	require.NotNil(t, e.Venue.Lat)
	assert.Equal(t, 56.9496, *e.Venue.Lat)
	require.NotNil(t, e.Start)

	// Alternate field names normalize into the same shape; the derived ID is
	// stable across fetches.
	o := events[1]
	assert.Equal(t, "Old Feed Event", o.Name)
	assert.Equal(t, "Liepaja", o.Venue.Address)
	require.NotNil(t, o.Venue.Lat)
	assert.Equal(t, 56.5047, *o.Venue.Lat)
	assert.NotEmpty(t, o.ID)

	again, err := New(path, testLogger()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, o.ID, again[1].ID)
}

func TestSource_Fetch_SkipsMalformedRecords(t *testing.T) {
	path := writeFeed(t, `[
		{"name": "Good"},
		{"name": 123},
		{"name": "Also good"}
	]`)

	events, err := New(path, testLogger()).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Good", events[0].Name)
	assert.Equal(t, "Also good", events[1].Name)
}

func TestSource_Fetch_NamePlaceholder(t *testing.T) {
	path := writeFeed(t, `[{"start": "2026-09-12T19:30:00Z"}]`)
	events, err := New(path, testLogger()).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Untitled event", events[0].Name)
}
