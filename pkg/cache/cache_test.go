package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_RoundTrip(t *testing.T) {
	c := New(t.TempDir(), 0, 0)

	c.Set("https://example.com/article", "some extracted text")

	text, ok := c.Get("https://example.com/article")
	require.True(t, ok)
	assert.Equal(t, "some extracted text", text)
}

func TestCache_MissOnUnknownURL(t *testing.T) {
	c := New(t.TempDir(), 0, 0)

	_, ok := c.Get("https://example.com/never-stored")
	assert.False(t, ok)
}

func TestCache_ExpiredEntryNotServed(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 0, 0)

	// 7h-old entry is past the 6h freshness window but within retention
	writeEntry(t, dir, "https://example.com/old", "old text", time.Now().Add(-7*time.Hour))

	_, ok := c.Get("https://example.com/old")
	assert.False(t, ok)

	// entry is still on disk until cleanup
	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 0, 0)

	h := sha256.Sum256([]byte("https://example.com/corrupt"))
	path := filepath.Join(dir, hex.EncodeToString(h[:])+".json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	_, ok := c.Get("https://example.com/corrupt")
	assert.False(t, ok)
}

func TestCache_SetSwallowsFailures(t *testing.T) {
	// root path collides with an existing file, MkdirAll will fail
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	c := New(blocker, 0, 0)
	assert.NotPanics(t, func() { c.Set("https://example.com/a", "text") })

	_, ok := c.Get("https://example.com/a")
	assert.False(t, ok)
}

func TestCache_Cleanup(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 0, 0)

	writeEntry(t, dir, "https://example.com/ancient", "ancient", time.Now().Add(-25*time.Hour))
	writeEntry(t, dir, "https://example.com/stale", "stale", time.Now().Add(-7*time.Hour))
	c.Set("https://example.com/fresh", "fresh")

	c.Cleanup()

	// only the 25h-old entry is past the 24h retention window
	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, ok := c.Get("https://example.com/ancient")
	assert.False(t, ok)
	text, ok := c.Get("https://example.com/fresh")
	require.True(t, ok)
	assert.Equal(t, "fresh", text)
}

func TestCache_CleanupIdempotent(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 0, 0)

	writeEntry(t, dir, "https://example.com/ancient", "ancient", time.Now().Add(-25*time.Hour))
	c.Set("https://example.com/fresh", "fresh")

	c.Cleanup()
	after, err := os.ReadDir(dir)
	require.NoError(t, err)

	c.Cleanup()
	again, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, again, len(after))
	for i := range after {
		assert.Equal(t, after[i].Name(), again[i].Name())
	}
}

func TestCache_CleanupMissingDir(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "does-not-exist"), 0, 0)
	assert.NotPanics(t, c.Cleanup)
}

func TestCache_CleanupRemovesCorruptEntries(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 0, 0)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("{broken"), 0o644))
	c.Set("https://example.com/fresh", "fresh")

	c.Cleanup()

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

// writeEntry places an entry file with a controlled timestamp, bypassing Set
func writeEntry(t *testing.T, dir, url, text string, ts time.Time) {
	t.Helper()
	data, err := json.Marshal(entry{Text: text, Timestamp: ts})
	require.NoError(t, err)
	h := sha256.Sum256([]byte(url))
	path := filepath.Join(dir, hex.EncodeToString(h[:])+".json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
}
