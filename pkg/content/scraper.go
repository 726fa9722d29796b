// Package content fetches article pages and extracts their readable text,
// backed by a best-effort cache of previously scraped URLs.
package content

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/pool"
)

const (
	// concurrency is the cap on articles scraped in parallel
	concurrency = 25

	// maxTextLength caps extracted text before caching or use
	maxTextLength = 8000

	defaultTimeout = 10 * time.Second
)

// Store is the article text cache consulted before any network fetch.
// Implementations must treat all failures as misses; the scraper never
// handles cache errors.
type Store interface {
	Get(url string) (text string, ok bool)
	Set(url, text string)
}

// Scraper fetches article URLs and extracts readable text
type Scraper struct {
	client    *http.Client
	store     Store
	userAgent string
}

// NewScraper creates a scraper with the given cache. A nil store disables
// caching. Zero timeout selects the default 10s per-article timeout.
func NewScraper(store Store, timeout time.Duration, userAgent string) *Scraper {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if userAgent == "" {
		userAgent = "NewsDigest/1.0"
	}
	return &Scraper{
		client:    &http.Client{Timeout: timeout},
		store:     store,
		userAgent: userAgent,
	}
}

// FetchArticleText returns the readable text for the URL, from cache when a
// fresh entry exists, otherwise scraped from the network. The result is
// whitespace-normalized and capped at 8000 characters, and stored back in
// the cache best-effort.
func (s *Scraper) FetchArticleText(ctx context.Context, urlStr string) (string, error) {
	if s.store != nil {
		if text, ok := s.store.Get(urlStr); ok {
			lgr.Printf("[DEBUG] cache hit for %s", urlStr)
			return text, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	addBrowserHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch article %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, urlStr)
	}

	text, err := ExtractText(resp.Body)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", urlStr, err)
	}

	if len(text) > maxTextLength {
		text = text[:maxTextLength]
	}

	if s.store != nil && text != "" {
		s.store.Set(urlStr, text)
	}
	return text, nil
}

// FetchAll scrapes all referenced articles with bounded concurrency. A failed
// scrape is logged with the offending URL and degraded to empty text, so the
// returned slice always has one entry per input, in input order.
func (s *Scraper) FetchAll(ctx context.Context, refs []domain.ArticleRef) []domain.ScrapedArticle {
	results, _ := pool.Map(ctx, refs, concurrency, func(ctx context.Context, ref domain.ArticleRef) (domain.ScrapedArticle, error) {
		text, err := s.FetchArticleText(ctx, ref.URL)
		if err != nil {
			lgr.Printf("[WARN] failed to scrape %s: %v", ref.URL, err)
			text = ""
		}
		return domain.ScrapedArticle{URL: ref.URL, Title: ref.Title, FeedURL: ref.FeedURL, Text: text}, nil
	})
	return results
}
