package digest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/pool"
)

const (
	// writeConcurrency is the cap on digest files written in parallel
	writeConcurrency = 20

	// GlobalFileName is the fixed name of the cross-source overview file
	GlobalFileName = "global_summary.md"
)

// Writer persists digest files under a dated directory
type Writer struct {
	outputDir string
}

// NewWriter creates a writer rooted at the given output directory
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// Write stores each per-source summary as <hostname>_summary.md and the
// global summary as global_summary.md under <outputDir>/<YYYY-MM-DD>.
// It returns the number of files written.
func (w *Writer) Write(ctx context.Context, date time.Time, summaries []domain.SourceSummary, global string) (int, error) {
	dir := filepath.Join(w.outputDir, date.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir %s: %w", dir, err)
	}

	type file struct{ path, content string }
	files := make([]file, 0, len(summaries)+1)
	for _, s := range summaries {
		name := sanitizeHostname(hostname(s.FeedURL)) + "_summary.md"
		files = append(files, file{path: filepath.Join(dir, name), content: s.Summary})
	}
	if global != "" {
		files = append(files, file{path: filepath.Join(dir, GlobalFileName), content: global})
	}

	_, err := pool.Map(ctx, files, writeConcurrency, func(_ context.Context, f file) (struct{}, error) {
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return struct{}{}, fmt.Errorf("write digest file %s: %w", f.path, err)
		}
		lgr.Printf("[DEBUG] wrote %s", f.path)
		return struct{}{}, nil
	})
	if err != nil {
		return 0, err
	}

	return len(files), nil
}

// sanitizeHostname keeps letters, digits, dots and dashes, replacing
// everything else so the result is safe as a file name
func sanitizeHostname(host string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, host)
}
