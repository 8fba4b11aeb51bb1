package storage

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neargo/config"
)

func newTestSupabaseStore(t *testing.T, handler http.Handler) *supabaseStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store, err := newSupabaseStore(config.StorageConfig{
		Provider:      "supabase",
		Bucket:        "submissions",
		SupabaseURL:   srv.URL,
		ServiceKey:    "service-key",
		SigningSecret: "signing-secret",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store.(*supabaseStore)
}

func TestSupabaseStore_List(t *testing.T) {
	store := newTestSupabaseStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/list/submissions", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		var req listRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "events", req.Prefix)

		json.NewEncoder(w).Encode([]listEntry{{Name: "a.json"}, {Name: "b.json"}, {Name: ""}})
	}))

	keys, err := store.List(context.Background(), "events")
	require.NoError(t, err)
	assert.Equal(t, []string{"events/a.json", "events/b.json"}, keys)
}

func TestSupabaseStore_Get(t *testing.T) {
	store := newTestSupabaseStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing.json") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"title":"x"}`))
	}))

	data, err := store.Get(context.Background(), "events/a.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"x"}`, string(data))

	_, err = store.Get(context.Background(), "events/missing.json")
	assert.Error(t, err)
}

func TestSupabaseStore_SignedURL(t *testing.T) {
	store := newTestSupabaseStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("signed URL generation must not call the API")
	}))

	signed, err := store.SignedURL(context.Background(), "images/pic.jpg", 30*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, signed, "/storage/v1/object/sign/submissions/images/pic.jpg?token=")

	u, err := url.Parse(signed)
	require.NoError(t, err)
	tokenString := u.Query().Get("token")
	require.NotEmpty(t, tokenString)

	var claims signedURLClaims
	_, err = jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return []byte("signing-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "submissions/images/pic.jpg", claims.URL)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, time.Minute)
}
