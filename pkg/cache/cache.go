// Package cache provides the icon tile cache used by the packing pipeline.
//
// Rasterizing an icon is deterministic for a given (content, size,
// supersample) triple, so the encoded tile can be cached across runs. On
// repeated packs only changed icons are re-rendered; the atlas output is
// byte-identical either way.
//
// # Backends
//
//   - FileCache: directory-based cache for CLI usage (the default)
//   - RedisCache: shared cache for CI fleets packing the same icon sets
//   - NullCache: no-op cache for tests and --no-cache
//
// Keys are derived from SHA-256 content hashes; there is no invalidation
// beyond TTL because a tile's key changes whenever its inputs change.
package cache

import (
	"context"
	"time"
)

// Cache stores encoded icon tiles keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TileKey builds the cache key for one rendered icon tile.
// The key covers everything that determines tile pixels: the vector content,
// the target size, and the supersample factor.
func TileKey(content []byte, size, supersample int) string {
	return hashKey("tile", Hash(content), size, supersample)
}
