package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdigest/pkg/config"
)

func TestRun_DryRun(t *testing.T) {
	var feedSrv *httptest.Server
	feedSrv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/article" {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><article><p>article body text</p></article></body></html>`))
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(`<?xml version="1.0"?>
<rss version="2.0"><channel><title>test feed</title>
<item><title>first</title><link>` + feedSrv.URL + `/article</link></item>
</channel></rss>`))
	}))
	defer feedSrv.Close()

	tmpDir := t.TempDir()
	cfg := &config.Config{Feeds: []string{feedSrv.URL}}
	cfg.Output.Dir = filepath.Join(tmpDir, "digests")
	cfg.Cache.Dir = filepath.Join(tmpDir, "cache")
	cfg.Cache.Freshness = 6 * time.Hour
	cfg.Cache.Retention = 24 * time.Hour
	cfg.Fetch.FeedTimeout = 5 * time.Second
	cfg.Fetch.ArticleTimeout = 5 * time.Second
	cfg.Fetch.ItemLimit = 5
	cfg.History.DSN = "file:" + filepath.Join(tmpDir, "runs.db")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := run(ctx, cfg, Opts{DryRun: true})
	require.NoError(t, err)
}

func TestRun_ListRunsEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{}
	cfg.History.DSN = "file:" + filepath.Join(tmpDir, "runs.db")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx, cfg, Opts{ListRuns: true})
	require.NoError(t, err)
}

func TestRun_BadHistoryDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.History.DSN = "file:" + filepath.Join(t.TempDir(), "no-such-dir", "runs.db")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx, cfg, Opts{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "open run history")
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		setupLog(true)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		setupLog(false)
	})

	t.Run("with secrets", func(t *testing.T) {
		setupLog(true, "secret1", "secret2")
	})

	t.Run("empty secrets filtered", func(t *testing.T) {
		setupLog(false, "", "")
	})
}
