// Package cache stores rendered artifacts between runs.
//
// Rendering the catalog is deterministic for a given graph, selection,
// viewport, theme and tuning, so the headless pipeline keys its output by a
// hash of those inputs and skips layout and simulation on a hit.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: a shared Redis instance, for CI runners and teams
//   - [NullCache]: stores nothing (--no-cache)
//
// [Open] picks one from a backend name.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Dir      string // file backend; defaults to [DefaultDir]
	RedisURL string // redis backend
}

// Open returns the cache described by opts. An empty backend means file.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		dir := opts.Dir
		if dir == "" {
			dir = DefaultDir()
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, &UnknownBackendError{Backend: opts.Backend}
}

// DefaultDir returns the default file cache directory:
// $XDG_CACHE_HOME/skillgraph, or ~/.cache/skillgraph.
func DefaultDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "skillgraph")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "skillgraph-cache")
	}
	return filepath.Join(home, ".cache", "skillgraph")
}
