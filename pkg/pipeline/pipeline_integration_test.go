package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdigest/pkg/cache"
	"github.com/umputun/newsdigest/pkg/config"
	"github.com/umputun/newsdigest/pkg/content"
	"github.com/umputun/newsdigest/pkg/digest"
	"github.com/umputun/newsdigest/pkg/feed"
	"github.com/umputun/newsdigest/pkg/store"
)

// TestPipeline_EndToEnd wires real components against test servers: an RSS
// feed, an article page and an OpenAI-compatible endpoint.
func TestPipeline_EndToEnd(t *testing.T) {
	// article server
	articleSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><article><p>Full article text about the news.</p></article></body></html>`))
	}))
	defer articleSrv.Close()

	// feed server returning one item pointing at the article
	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>News</title>
		<link>http://example.com</link>
		<item>
			<title>T</title>
			<link>` + articleSrv.URL + `/a</link>
		</item>
	</channel>
</rss>`
		w.Write([]byte(rss))
	}))
	defer feedSrv.Close()

	// generation service returning fixed strings
	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		text := "per-source digest"
		if strings.Contains(req.Messages[0].Content, "cross-source") {
			text = "global digest"
		}
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: text}}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer llmSrv.Close()

	outDir := t.TempDir()
	st, err := store.New(context.Background(), "file:"+filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer st.Close()

	articleCache := cache.New(t.TempDir(), 0, 0)
	llmCfg := config.LLMConfig{
		Endpoint: llmSrv.URL + "/v1", APIKey: "test", Model: "gpt-4o-mini",
		Temperature: 0.4, MaxTokens: 500, Timeout: 5 * time.Second,
	}

	p := New(Params{
		Fetcher:    feed.NewFetcher(5*time.Second, 5),
		Scraper:    content.NewScraper(articleCache, 5*time.Second, ""),
		Summarizer: digest.NewSummarizer(llmCfg, "English"),
		Writer:     digest.NewWriter(outDir),
		Recorder:   st,
		Cleaner:    articleCache,
		Feeds:      []string{feedSrv.URL},
	})

	require.NoError(t, p.Run(context.Background()))

	// both digest files written under today's date, the source file named
	// after the feed's hostname
	dateDir := filepath.Join(outDir, time.Now().Format("2006-01-02"))
	feedHost := strings.Split(strings.TrimPrefix(feedSrv.URL, "http://"), ":")[0]
	var sourceFile string
	entries, err := os.ReadDir(dateDir)
	require.NoError(t, err)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_summary.md") && e.Name() != digest.GlobalFileName {
			sourceFile = filepath.Join(dateDir, e.Name())
		}
	}
	require.NotEmpty(t, sourceFile, "per-source summary file must exist")
	assert.Contains(t, filepath.Base(sourceFile), feedHost)

	data, err := os.ReadFile(sourceFile)
	require.NoError(t, err)
	assert.Equal(t, "per-source digest", string(data))

	data, err = os.ReadFile(filepath.Join(dateDir, digest.GlobalFileName))
	require.NoError(t, err)
	assert.Equal(t, "global digest", string(data))

	// run recorded in history
	runs, err := st.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, store.StatusCompleted, runs[0].Status)
	assert.Equal(t, 1, runs[0].Feeds)
	assert.Equal(t, 1, runs[0].Articles)
	assert.Equal(t, 2, runs[0].Files)
}

// TestPipeline_EndToEnd_ZeroArticles covers a feed with no usable items.
func TestPipeline_EndToEnd_ZeroArticles(t *testing.T) {
	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Empty News</title>
		<link>http://example.com</link>
		<item>
			<title>No link here</title>
		</item>
	</channel>
</rss>`
		w.Write([]byte(rss))
	}))
	defer feedSrv.Close()

	outDir := t.TempDir()
	p := New(Params{
		Fetcher: feed.NewFetcher(5*time.Second, 5),
		Scraper: content.NewScraper(nil, 5*time.Second, ""),
		Feeds:   []string{feedSrv.URL},
	})

	require.NoError(t, p.Run(context.Background()))

	// no digest files produced
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
