package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"neargo/config"
	"neargo/internal/domain"
)

// supabaseStore talks to the Supabase storage REST API. Signed URLs are
// minted locally with the project's signing secret, the same HS256 token the
// storage gateway verifies, so no round trip is needed per URL.
type supabaseStore struct {
	client  *http.Client
	baseURL string
	bucket  string
	apiKey  string
	secret  []byte
	logger  *slog.Logger
}

func newSupabaseStore(cfg config.StorageConfig, logger *slog.Logger) (domain.BlobStore, error) {
	if cfg.SupabaseURL == "" || cfg.ServiceKey == "" {
		return nil, fmt.Errorf("supabase storage: url and service key are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("supabase storage: bucket is required")
	}
	return &supabaseStore{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimSuffix(cfg.SupabaseURL, "/"),
		bucket:  cfg.Bucket,
		apiKey:  cfg.ServiceKey,
		secret:  []byte(cfg.SigningSecret),
		logger:  logger,
	}, nil
}

type listRequest struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
}

type listEntry struct {
	Name string `json:"name"`
}

func (s *supabaseStore) List(ctx context.Context, prefix string) ([]string, error) {
	body, err := json.Marshal(listRequest{Prefix: prefix, Limit: 1000})
	if err != nil {
		return nil, fmt.Errorf("encode list request: %w", err)
	}
	url := fmt.Sprintf("%s/storage/v1/object/list/%s", s.baseURL, s.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage api returned status: %d", resp.StatusCode)
	}

	var entries []listEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		// The API returns names relative to the prefix folder.
		if prefix != "" {
			keys = append(keys, strings.TrimSuffix(prefix, "/")+"/"+e.Name)
		} else {
			keys = append(keys, e.Name)
		}
	}
	return keys, nil
}

func (s *supabaseStore) Get(ctx context.Context, key string) ([]byte, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage api returned status: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *supabaseStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("storage api returned status: %d", resp.StatusCode)
	}
	return nil
}

func (s *supabaseStore) Delete(ctx context.Context, key string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("storage api returned status: %d", resp.StatusCode)
	}
	return nil
}

// signedURLClaims is the token payload the storage gateway expects on
// /object/sign URLs.
type signedURLClaims struct {
	URL string `json:"url"`
	jwt.RegisteredClaims
}

func (s *supabaseStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("supabase storage: signing secret not configured")
	}
	now := time.Now()
	claims := signedURLClaims{
		URL: s.bucket + "/" + key,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return fmt.Sprintf("%s/storage/v1/object/sign/%s/%s?token=%s", s.baseURL, s.bucket, key, signed), nil
}
