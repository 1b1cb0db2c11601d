// Package cache remembers which files were already clean under a given rule
// set, so unchanged files can be skipped on the next run.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultFileName is the cache file used when the config does not name one.
const DefaultFileName = ".usplit.cache"

// Current schema version - increment when payload format changes
const schemaVersion uint16 = 1

// payload is the on-disk form.
type payload struct {
	Schema    uint16
	Signature string
	// Hashes maps a cleaned file path to the SHA-256 of its last known clean content.
	Hashes map[string]string
}

// Cache is a file hash cache. Thread-safe for concurrent access.
type Cache struct {
	mu        sync.RWMutex
	path      string
	signature string
	hashes    map[string]string
	dirty     bool
}

// New returns an empty cache that will be saved to path.
func New(path, signature string) *Cache {
	return &Cache{
		path:      path,
		signature: signature,
		hashes:    make(map[string]string),
	}
}

// Load reads the cache at path. A missing file, a different schema version or
// a different rule signature all yield an empty cache.
func Load(path, signature string) (*Cache, error) {
	c := New(path, signature)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("path", path).Msg("failed to close cache file")
		}
	}()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if p.Schema != schemaVersion || p.Signature != signature {
		log.Debug().
			Str("path", path).
			Uint16("schema", p.Schema).
			Str("signature", p.Signature).
			Msg("cache invalidated")
		c.dirty = true
		return c, nil
	}
	if p.Hashes != nil {
		c.hashes = p.Hashes
	}
	return c, nil
}

// Path returns the file the cache is saved to.
func (c *Cache) Path() string {
	return c.path
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.hashes)
}

// NeedsFixing reports whether content differs from what was last recorded
// for file.
func (c *Cache) NeedsFixing(file string, content []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.hashes[filepath.Clean(file)]
	return !ok || h != hash(content)
}

// Set records content as the clean state of file.
func (c *Cache) Set(file string, content []byte) {
	key, h := filepath.Clean(file), hash(content)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hashes[key] == h {
		return
	}
	c.hashes[key] = h
	c.dirty = true
}

// Forget drops file from the cache.
func (c *Cache) Forget(file string) {
	key := filepath.Clean(file)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.hashes[key]; ok {
		delete(c.hashes, key)
		c.dirty = true
	}
}

// Save writes the cache if anything changed since it was loaded. The file is
// replaced atomically.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".usplit-cache-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", tmp).Msg("failed to remove temp file")
		}
	}()

	err = msgpack.NewEncoder(f).Encode(&payload{
		Schema:    schemaVersion,
		Signature: c.signature,
		Hashes:    c.hashes,
	})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return err
	}
	c.dirty = false
	return nil
}

func hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
