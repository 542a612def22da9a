// Package artwork stores poster images for catalog entries on a local
// directory or an S3 bucket.
package artwork

import (
	"context"
	"fmt"
	"io"
)

// Storage persists poster artwork under opaque keys.
type Storage interface {
	Store(ctx context.Context, key string, reader io.Reader) error
	Retrieve(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	URL(ctx context.Context, key string) (string, error)
}

// PosterKey returns the storage key for a film's poster image.
func PosterKey(filmID uint) string {
	return fmt.Sprintf("posters/%d.jpg", filmID)
}
