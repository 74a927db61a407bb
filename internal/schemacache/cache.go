// Package schemacache stores fetched schema bytes on disk, keyed by a
// digest of the schema URI.
//
// The key hashes the URI string, not the fetched content, so a remote
// schema that changes behind the same URI is served stale until the cache
// entry is deleted by hand. Entries are never expired.
package schemacache

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
)

// dirPermissions restricts the cache directory to the owning user's group.
const dirPermissions = 0o750

// filePermissions for individual cache entries.
const filePermissions = 0o644

// Cache is a content-addressed on-disk store of raw schema bytes.
type Cache struct {
	dir string
}

// New creates a cache rooted at dir. The directory is created lazily on
// first write, so constructing a cache never touches the filesystem.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key returns the hex digest addressing uri within the cache directory.
func Key(uri string) string {
	sum := sha256.Sum256([]byte(uri))
	return hex.EncodeToString(sum[:])
}

// path returns the entry file for uri.
func (c *Cache) path(uri string) string {
	return filepath.Join(c.dir, Key(uri))
}

// Read returns the cached bytes for uri. A missing entry and an unreadable
// entry are the same thing to callers: (nil, false), fall through to a live
// fetch. Read never returns an error.
func (c *Cache) Read(uri string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(uri))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Write stores data for uri, best-effort. Failures are logged at debug
// level and otherwise swallowed: a cache write must never fail the lint
// operation it belongs to. Concurrent writes for the same URI are
// last-write-wins, which is safe because content is assumed stable per URI
// within a run.
func (c *Cache) Write(uri string, data []byte) {
	if err := os.MkdirAll(c.dir, dirPermissions); err != nil {
		slog.Debug("schema cache directory unavailable", "dir", c.dir, "error", err)
		return
	}
	if err := os.WriteFile(c.path(uri), data, filePermissions); err != nil {
		slog.Debug("schema cache write failed", "uri", uri, "error", err)
	}
}
