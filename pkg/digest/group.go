// Package digest turns scraped articles into per-source and global Markdown
// summaries and writes them out as dated digest files.
package digest

import (
	"net/url"

	"github.com/umputun/newsdigest/pkg/domain"
)

// GroupBySource partitions scraped articles by originating feed. Articles
// with empty text are excluded. Groups appear in first-seen order and
// articles within a group keep discovery order.
func GroupBySource(articles []domain.ScrapedArticle) []domain.SourceGroup {
	index := make(map[string]int)
	var groups []domain.SourceGroup

	for _, a := range articles {
		if a.Text == "" {
			continue
		}
		i, ok := index[a.FeedURL]
		if !ok {
			i = len(groups)
			index[a.FeedURL] = i
			groups = append(groups, domain.SourceGroup{FeedURL: a.FeedURL})
		}
		groups[i].Articles = append(groups[i].Articles, a)
	}

	return groups
}

// hostname extracts the host part of a feed URL, falling back to the raw
// value when it doesn't parse
func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}
