// Package feed fetches and parses RSS/Atom feeds with bounded concurrency
// and per-feed failure isolation.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/pool"
)

// concurrency is the cap on feeds fetched in parallel
const concurrency = 10

// DefaultItemLimit is how many items are taken from each feed
const DefaultItemLimit = 5

// Fetcher retrieves and parses RSS/Atom feeds
type Fetcher struct {
	parser  *gofeed.Parser
	timeout time.Duration
	limit   int
	policy  *bluemonday.Policy
}

// NewFetcher creates a feed fetcher. Zero limit selects DefaultItemLimit.
func NewFetcher(timeout time.Duration, limit int) *Fetcher {
	if limit <= 0 {
		limit = DefaultItemLimit
	}

	parser := gofeed.NewParser()
	parser.UserAgent = "NewsDigest/1.0"
	parser.Client = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Fetcher{
		parser:  parser,
		timeout: timeout,
		limit:   limit,
		policy:  bluemonday.StrictPolicy(),
	}
}

// Fetch retrieves a single feed and returns up to the configured number of
// items. Items lacking title or link are dropped. Any parse or network
// failure makes the whole feed invalid.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]domain.FeedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parsed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	items := make([]domain.FeedItem, 0, f.limit)
	for _, item := range parsed.Items {
		if len(items) >= f.limit {
			break
		}

		title := strings.TrimSpace(f.policy.Sanitize(item.Title))
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		fi := domain.FeedItem{Title: title, Link: link, Content: item.Content}
		if item.PublishedParsed != nil {
			fi.Published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			fi.Published = *item.UpdatedParsed
		}
		items = append(items, fi)
	}

	return items, nil
}

// FetchAll fetches all feeds with bounded concurrency. A failing feed is
// logged and degraded to an empty-items result, so the returned slice always
// has one entry per input URL, in input order.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []domain.FeedResult {
	results, _ := pool.Map(ctx, urls, concurrency, func(ctx context.Context, feedURL string) (domain.FeedResult, error) {
		items, err := f.Fetch(ctx, feedURL)
		if err != nil {
			lgr.Printf("[WARN] invalid feed source %s: %v", feedURL, err)
			return domain.FeedResult{URL: feedURL, Items: []domain.FeedItem{}}, nil
		}
		lgr.Printf("[DEBUG] fetched %d items from %s", len(items), feedURL)
		return domain.FeedResult{URL: feedURL, Items: items}, nil
	})
	return results
}
