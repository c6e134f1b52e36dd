// Package cache stores rendered frames and exports between runs.
//
// Keys come from a [Keyer], which hashes the dataset together with every
// option that changes the output, so a cached entry is only reused for an
// identical render:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.FrameKey(cache.Hash(data), cache.FrameKeyOpts{Format: "png", Width: 800, Height: 600})
//	if png, ok, _ := c.Get(ctx, key); ok {
//	    return png, nil
//	}
//
// [FileCache] keeps entries under the user cache directory; [NullCache]
// disables caching.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// DefaultDir returns the netcanvas cache directory, honouring XDG_CACHE_HOME.
func DefaultDir() string {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		if d, err := os.UserCacheDir(); err == nil {
			dir = d
		} else {
			dir = os.TempDir()
		}
	}
	return filepath.Join(dir, "netcanvas")
}
