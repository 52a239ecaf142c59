package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when a cached entry exists but has
// exceeded its time-to-live. The stale data stays on disk; callers should
// fetch fresh data and update the cache with [Cache.Set].
var ErrExpired = errors.New("cache entry expired")

// Cache provides file-based caching of JSON-marshalable registry responses.
//
// Each entry is stored as a JSON file whose name is the SHA-256 hash of
// the cache key, so arbitrary keys are safe to use. Entries expire based
// on file modification time; a TTL of 0 means they never expire.
//
// Cache operations are not goroutine-safe; callers must synchronize access
// to a shared instance. Separate instances (even across processes) can
// share a directory, since the filesystem provides atomic file writes.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// DefaultDir returns the default cache directory,
// $XDG_CACHE_HOME/depradar when XDG_CACHE_HOME is set and
// ~/.cache/depradar otherwise. The cache commands and every client
// resolve the directory through this single function.
func DefaultDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "depradar"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "depradar"), nil
}

// NewCache creates a Cache storing entries in dir with the given TTL.
// If dir is empty, [DefaultDir] is used. The directory is created if it
// does not exist.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the absolute path to the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the time-to-live for cache entries (0 means no expiration).
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get retrieves a cached value by key and unmarshals it into v.
// It returns (true, nil) on a hit, (false, nil) on a miss, and
// (false, ErrExpired) when the entry exists but exceeded its TTL.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(c.prefix + key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set stores a value under key, overwriting any existing entry and
// resetting its TTL.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Namespace returns a scoped view of the cache that prefixes all keys,
// avoiding collisions between data sources:
//
//	gh := cache.Namespace("github:")
//	npm := cache.Namespace("npm:")
//
// The returned Cache shares the parent's directory and TTL.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{
		dir:    c.dir,
		ttl:    c.ttl,
		prefix: c.prefix + prefix,
	}
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
