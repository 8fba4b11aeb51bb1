package domain

import (
	"context"
	"time"
)

// BlobStore exposes key-addressed object storage: the submissions feed and
// its images live behind this interface. SignedURL produces a time-limited
// read URL for a stored object.
type BlobStore interface {
	List(ctx context.Context, prefix string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
