// Package pipeline sequences a digest run: fetch feeds, scrape articles,
// summarize per source, summarize globally, persist. Stages run strictly in
// order, each waiting for the previous one to fully resolve.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdigest/pkg/digest"
	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/store"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/scraper.go -pkg mocks -skip-ensure -fmt goimports . Scraper
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer
//go:generate moq -out mocks/writer.go -pkg mocks -skip-ensure -fmt goimports . Writer
//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . Recorder

// Fetcher retrieves all configured feeds with per-feed failure isolation
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) []domain.FeedResult
}

// Scraper extracts article text with per-article failure isolation
type Scraper interface {
	FetchAll(ctx context.Context, refs []domain.ArticleRef) []domain.ScrapedArticle
}

// Summarizer generates per-source and global Markdown summaries
type Summarizer interface {
	SummarizeSources(ctx context.Context, groups []domain.SourceGroup) ([]domain.SourceSummary, error)
	SummarizeAll(ctx context.Context, summaries []domain.SourceSummary) (string, error)
}

// Writer persists digest files under a dated directory
type Writer interface {
	Write(ctx context.Context, date time.Time, summaries []domain.SourceSummary, global string) (int, error)
}

// Recorder appends run records to the history store
type Recorder interface {
	RecordRun(ctx context.Context, run *store.Run) error
}

// Cleaner evicts stale entries from the article cache
type Cleaner interface {
	Cleanup()
}

// Params holds all dependencies and settings for a Pipeline
type Params struct {
	Fetcher    Fetcher
	Scraper    Scraper
	Summarizer Summarizer
	Writer     Writer
	Recorder   Recorder // optional, nil disables run history
	Cleaner    Cleaner  // optional, nil disables cache maintenance

	Feeds  []string
	DryRun bool
}

// Pipeline runs the digest stages in order
type Pipeline struct {
	Params
}

// New creates a pipeline with the provided dependencies
func New(p Params) *Pipeline {
	return &Pipeline{Params: p}
}

// Run executes a single digest run. Per-item failures (one feed, one
// article) degrade to empty results inside the batch stages; a failure of
// the summarization or persist stage propagates out and the run terminates
// with the already-fetched results recorded but no digest files produced.
func (p *Pipeline) Run(ctx context.Context) error {
	started := time.Now()

	// cache maintenance owns cleanup, get/set never trigger it
	if p.Cleaner != nil {
		p.Cleaner.Cleanup()
	}

	// stage 1: fetch feeds
	feedResults := p.Fetcher.FetchAll(ctx, p.Feeds)
	refs := flatten(feedResults)
	lgr.Printf("[INFO] discovered %d articles across %d feeds", len(refs), len(p.Feeds))

	if len(refs) == 0 {
		lgr.Printf("[INFO] no articles discovered, nothing to do")
		p.record(ctx, &store.Run{StartedAt: started, Feeds: len(p.Feeds), Status: store.StatusNoOp})
		return nil
	}

	// stage 2: scrape articles
	articles := p.Scraper.FetchAll(ctx, refs)
	groups := digest.GroupBySource(articles)
	scraped := 0
	for _, g := range groups {
		scraped += len(g.Articles)
	}
	lgr.Printf("[INFO] scraped %d of %d articles from %d sources", scraped, len(refs), len(groups))

	if len(groups) == 0 {
		lgr.Printf("[INFO] no articles scraped, nothing to summarize")
		p.record(ctx, &store.Run{StartedAt: started, Feeds: len(p.Feeds), Articles: len(refs), Status: store.StatusNoOp})
		return nil
	}

	if p.DryRun {
		lgr.Printf("[INFO] dry run, skipping summarization and output")
		p.record(ctx, &store.Run{StartedAt: started, Feeds: len(p.Feeds), Articles: scraped,
			Sources: len(groups), Status: store.StatusCompleted})
		return nil
	}

	// stage 3: per-source summaries, a single source's failure halts the stage
	summaries, err := p.Summarizer.SummarizeSources(ctx, groups)
	if err != nil {
		return p.fail(ctx, started, scraped, len(groups), fmt.Errorf("summarization stage failed: %w", err))
	}
	lgr.Printf("[INFO] summarized %d sources", len(summaries))

	// stage 4: global summary over all per-source summaries
	global, err := p.Summarizer.SummarizeAll(ctx, summaries)
	if err != nil {
		return p.fail(ctx, started, scraped, len(groups), fmt.Errorf("summarization stage failed: %w", err))
	}

	// stage 5: persist
	files, err := p.Writer.Write(ctx, started, summaries, global)
	if err != nil {
		return p.fail(ctx, started, scraped, len(groups), fmt.Errorf("persist stage failed: %w", err))
	}

	lgr.Printf("[INFO] digest completed: %d feeds, %d articles, %d sources, %d files written",
		len(p.Feeds), scraped, len(groups), files)
	p.record(ctx, &store.Run{StartedAt: started, Feeds: len(p.Feeds), Articles: scraped,
		Sources: len(groups), Files: files, Status: store.StatusCompleted})
	return nil
}

// fail records the failed run and returns the error unchanged
func (p *Pipeline) fail(ctx context.Context, started time.Time, scraped, sources int, err error) error {
	p.record(ctx, &store.Run{StartedAt: started, Feeds: len(p.Feeds), Articles: scraped,
		Sources: sources, Status: store.StatusFailed, Error: err.Error()})
	return err
}

// record appends a run to history, best-effort
func (p *Pipeline) record(ctx context.Context, run *store.Run) {
	if p.Recorder == nil {
		return
	}
	if err := p.Recorder.RecordRun(ctx, run); err != nil {
		lgr.Printf("[WARN] can't record run history: %v", err)
	}
}

// flatten turns feed results into article refs, keeping feed provenance
func flatten(results []domain.FeedResult) []domain.ArticleRef {
	var refs []domain.ArticleRef
	for _, r := range results {
		for _, item := range r.Items {
			refs = append(refs, domain.ArticleRef{URL: item.Link, Title: item.Title, FeedURL: r.URL})
		}
	}
	return refs
}
