// Package storage provides blob-store backends for the submissions feed and
// its images: AWS S3 (or any S3-compatible endpoint) and the Supabase storage
// REST API, behind the domain.BlobStore port.
package storage

import (
	"context"
	"log/slog"
	"time"

	"neargo/config"
	"neargo/internal/domain"
)

// NewBlobStore creates a blob store from config. Provider "s3" uses AWS S3,
// "supabase" uses the Supabase storage REST API; "noop" or unknown values use
// a no-op store so a missing storage configuration degrades instead of
// failing the process.
func NewBlobStore(cfg config.StorageConfig, logger *slog.Logger) (domain.BlobStore, error) {
	switch cfg.Provider {
	case "s3":
		return newS3Store(cfg, logger)
	case "supabase":
		return newSupabaseStore(cfg, logger)
	case "", "noop":
		return &noopStore{}, nil
	default:
		logger.Warn("unknown storage provider, using noop", "provider", cfg.Provider)
		return &noopStore{}, nil
	}
}

// noopStore satisfies domain.BlobStore with empty results. Used when no
// storage backend is configured; the submissions source then reads nothing.
type noopStore struct{}

func (n *noopStore) List(ctx context.Context, prefix string) ([]string, error) { return nil, nil }
func (n *noopStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, domain.ErrNotFound
}
func (n *noopStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return nil
}
func (n *noopStore) Delete(ctx context.Context, key string) error { return nil }
func (n *noopStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "", domain.ErrNotFound
}
