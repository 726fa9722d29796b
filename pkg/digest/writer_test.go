package digest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdigest/pkg/domain"
)

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	date := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	summaries := []domain.SourceSummary{
		{FeedURL: "http://example.com/rss", Summary: "## Example digest"},
		{FeedURL: "https://feeds.other.org/main", Summary: "## Other digest"},
	}

	n, err := w.Write(context.Background(), date, summaries, "# Global")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	dateDir := filepath.Join(dir, "2025-03-14")

	data, err := os.ReadFile(filepath.Join(dateDir, "example.com_summary.md"))
	require.NoError(t, err)
	assert.Equal(t, "## Example digest", string(data))

	data, err = os.ReadFile(filepath.Join(dateDir, "feeds.other.org_summary.md"))
	require.NoError(t, err)
	assert.Equal(t, "## Other digest", string(data))

	data, err = os.ReadFile(filepath.Join(dateDir, GlobalFileName))
	require.NoError(t, err)
	assert.Equal(t, "# Global", string(data))
}

func TestWriter_Write_NoGlobal(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	n, err := w.Write(context.Background(), time.Now(), []domain.SourceSummary{
		{FeedURL: "http://example.com/rss", Summary: "digest"},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWriter_Write_UnwritableDir(t *testing.T) {
	// output root collides with an existing file
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	w := NewWriter(blocker)
	_, err := w.Write(context.Background(), time.Now(), nil, "global")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create output dir")
}

func TestSanitizeHostname(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"example.com", "example.com"},
		{"feeds.example-site.org", "feeds.example-site.org"},
		{"host:8080", "host_8080"},
		{"weird/host?x", "weird_host_x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeHostname(tt.in))
	}
}
