package domain

import "time"

// FeedItem is a single entry parsed from an RSS/Atom feed. Items without
// both title and link are dropped at the parsing boundary and never reach
// this type's consumers.
type FeedItem struct {
	Title     string
	Link      string
	Published time.Time
	Content   string
}

// FeedResult pairs a feed URL with the items fetched from it. A failed feed
// produces a result with empty Items, so a batch of N feeds always yields
// N results in input order.
type FeedResult struct {
	URL   string
	Items []FeedItem
}

// ArticleRef points at an article discovered in a feed. FeedURL keeps the
// provenance needed to group scraped articles by source later on.
type ArticleRef struct {
	URL     string
	Title   string
	FeedURL string
}

// ScrapedArticle holds the readable text extracted from an article page.
// Empty Text means the scrape failed and the article is excluded from
// summarization.
type ScrapedArticle struct {
	URL     string
	Title   string
	FeedURL string
	Text    string
}

// SourceGroup collects scraped articles sharing an originating feed.
type SourceGroup struct {
	FeedURL  string
	Articles []ScrapedArticle
}

// SourceSummary is the per-source digest produced by the summarizer,
// Markdown text covering all articles in the group.
type SourceSummary struct {
	FeedURL  string
	Articles []ScrapedArticle
	Summary  string
}
