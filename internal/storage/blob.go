package storage

import (
	"context"
	"time"
)

// BlobStore is the narrow contract the photo service and the reaper need
// from object storage. Paths are opaque strings chosen by the caller.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, paths []string) error
}

// Thumbnailer produces a reduced rendition of an image. Failures are
// always best-effort for callers; an upload never fails on a thumbnail.
type Thumbnailer interface {
	Thumbnail(data []byte) ([]byte, error)
}
