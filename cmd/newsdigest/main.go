package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newsdigest/pkg/cache"
	"github.com/umputun/newsdigest/pkg/config"
	"github.com/umputun/newsdigest/pkg/content"
	"github.com/umputun/newsdigest/pkg/digest"
	"github.com/umputun/newsdigest/pkg/feed"
	"github.com/umputun/newsdigest/pkg/pipeline"
	"github.com/umputun/newsdigest/pkg/store"
)

// Opts with all CLI options
type Opts struct {
	Config   string `short:"c" long:"config" env:"CONFIG" default:"newsdigest.yml" description:"config file"`
	Output   string `short:"o" long:"output" env:"OUTPUT" description:"output directory, overrides config"`
	DryRun   bool   `long:"dry-run" description:"fetch and scrape only, skip summarization"`
	ListRuns bool   `long:"list-runs" description:"print recent runs and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Printf("can't load config %s: %v\n", opts.Config, err)
		os.Exit(1)
	}
	if opts.Output != "" {
		cfg.Output.Dir = opts.Output
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug, cfg.LLM.APIKey)

	log.Printf("[INFO] starting newsdigest version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err = run(ctx, cfg, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] run failed: %v", err)
		os.Exit(1)
	}
}

// run executes the requested command: run history listing or a digest run
func run(ctx context.Context, cfg *config.Config, opts Opts) error {
	st, err := store.New(ctx, cfg.History.DSN)
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer st.Close()

	if opts.ListRuns {
		return listRuns(ctx, st)
	}

	articleCache := cache.New(cfg.Cache.Dir, cfg.Cache.Freshness, cfg.Cache.Retention)

	p := pipeline.New(pipeline.Params{
		Fetcher:    feed.NewFetcher(cfg.Fetch.FeedTimeout, cfg.Fetch.ItemLimit),
		Scraper:    content.NewScraper(articleCache, cfg.Fetch.ArticleTimeout, cfg.Fetch.UserAgent),
		Summarizer: digest.NewSummarizer(cfg.LLM, cfg.Output.Language),
		Writer:     digest.NewWriter(cfg.Output.Dir),
		Recorder:   st,
		Cleaner:    articleCache,
		Feeds:      cfg.Feeds,
		DryRun:     opts.DryRun,
	})

	return p.Run(ctx)
}

// listRuns prints recent digest runs, newest first
func listRuns(ctx context.Context, st *store.Store) error {
	runs, err := st.ListRuns(ctx, 20)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, r := range runs {
		line := fmt.Sprintf("%s  %-9s feeds:%d articles:%d sources:%d files:%d",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Status, r.Feeds, r.Articles, r.Sources, r.Files)
		if r.Error != "" {
			line += "  error: " + r.Error
		}
		fmt.Println(line)
	}
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	// mask secrets in log output, empty values would mangle everything
	secrets := make([]string, 0, len(secs))
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
