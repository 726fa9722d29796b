// Package cache implements a content-addressed, TTL-bound store of scraped
// article text, one JSON file per URL under an injected root directory.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pkgz/lgr"
)

// default TTL windows. Freshness governs serving, retention governs
// physical deletion by Cleanup; the two are independent.
const (
	DefaultFreshness = 6 * time.Hour
	DefaultRetention = 24 * time.Hour
)

// Cache stores article text keyed by sha256 of the source URL. All failure
// modes collapse to a miss on reads and a no-op on writes; callers never see
// cache errors.
type Cache struct {
	root      string
	freshness time.Duration
	retention time.Duration
}

type entry struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a cache rooted at the given directory. Zero durations select
// the default freshness (6h) and retention (24h) windows.
func New(root string, freshness, retention time.Duration) *Cache {
	if freshness == 0 {
		freshness = DefaultFreshness
	}
	if retention == 0 {
		retention = DefaultRetention
	}
	return &Cache{root: root, freshness: freshness, retention: retention}
}

// Get returns the cached text for the URL if a fresh entry exists. A stale
// entry still on disk is reported as a miss, read and decode failures too.
func (c *Cache) Get(url string) (string, bool) {
	data, err := os.ReadFile(c.path(url))
	if err != nil {
		return "", false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		lgr.Printf("[DEBUG] corrupt cache entry for %s: %v", url, err)
		return "", false
	}

	if time.Since(e.Timestamp) >= c.freshness {
		return "", false
	}
	return e.Text, true
}

// Set stores the text for the URL with the current timestamp. Caching is
// best-effort: any failure is logged and swallowed.
func (c *Cache) Set(url, text string) {
	if err := os.MkdirAll(c.root, 0o755); err != nil {
		lgr.Printf("[WARN] can't create cache dir %s: %v", c.root, err)
		return
	}

	data, err := json.Marshal(entry{Text: text, Timestamp: time.Now()})
	if err != nil {
		lgr.Printf("[WARN] can't encode cache entry for %s: %v", url, err)
		return
	}

	if err := os.WriteFile(c.path(url), data, 0o644); err != nil {
		lgr.Printf("[WARN] can't write cache entry for %s: %v", url, err)
	}
}

// Cleanup deletes entries older than the retention window. Entries past
// freshness but within retention are left alone; Get already refuses to
// serve them. Safe to call repeatedly, errors are logged and swallowed.
func (c *Cache) Cleanup() {
	files, err := os.ReadDir(c.root)
	if err != nil {
		if !os.IsNotExist(err) {
			lgr.Printf("[WARN] can't scan cache dir %s: %v", c.root, err)
		}
		return
	}

	removed := 0
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		path := filepath.Join(c.root, f.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var e entry
		if err := json.Unmarshal(data, &e); err != nil {
			// unreadable entry can't be aged, drop it
			_ = os.Remove(path)
			removed++
			continue
		}
		if time.Since(e.Timestamp) >= c.retention {
			if err := os.Remove(path); err != nil {
				lgr.Printf("[WARN] can't remove stale cache entry %s: %v", path, err)
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		lgr.Printf("[INFO] cache cleanup removed %d stale entries from %s", removed, c.root)
	}
}

func (c *Cache) path(url string) string {
	h := sha256.Sum256([]byte(url))
	return filepath.Join(c.root, hex.EncodeToString(h[:])+".json")
}
