package digest

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/newsdigest/pkg/config"
	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/pool"
)

const (
	// sourceConcurrency is the cap on per-source summary requests in flight
	sourceConcurrency = 6

	// articleContextLimit caps each article's text in the prompt context
	articleContextLimit = 6000
)

// Summarizer generates Markdown digests via an OpenAI-compatible service
type Summarizer struct {
	client   *openai.Client
	cfg      config.LLMConfig
	language string
}

// NewSummarizer creates a summarizer for the configured endpoint and model.
// Empty language defaults to English.
func NewSummarizer(cfg config.LLMConfig, language string) *Summarizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if language == "" {
		language = "English"
	}

	return &Summarizer{
		client:   openai.NewClientWithConfig(clientConfig),
		cfg:      cfg,
		language: language,
	}
}

// SummarizeSources produces one summary per source group, running up to
// sourceConcurrency requests in parallel. Output order matches input order.
// A single group's failure fails the whole stage; partial summaries are
// never returned.
func (s *Summarizer) SummarizeSources(ctx context.Context, groups []domain.SourceGroup) ([]domain.SourceSummary, error) {
	return pool.Map(ctx, groups, sourceConcurrency, func(ctx context.Context, g domain.SourceGroup) (domain.SourceSummary, error) {
		summary, err := s.complete(ctx, s.sourceInstruction(g), sourceContext(g))
		if err != nil {
			return domain.SourceSummary{}, fmt.Errorf("summarize source %s: %w", g.FeedURL, err)
		}
		lgr.Printf("[DEBUG] summarized %d articles from %s", len(g.Articles), hostname(g.FeedURL))
		return domain.SourceSummary{FeedURL: g.FeedURL, Articles: g.Articles, Summary: summary}, nil
	})
}

// SummarizeAll produces the cross-source overview from the per-source
// summaries. Called only after every per-source summary succeeded.
func (s *Summarizer) SummarizeAll(ctx context.Context, summaries []domain.SourceSummary) (string, error) {
	totalArticles := 0
	for _, sum := range summaries {
		totalArticles += len(sum.Articles)
	}

	var sb strings.Builder
	for _, sum := range summaries {
		fmt.Fprintf(&sb, "### %s\n\n%s\n\n", hostname(sum.FeedURL), sum.Summary)
	}

	result, err := s.complete(ctx, s.globalInstruction(totalArticles, len(summaries)), sb.String())
	if err != nil {
		return "", fmt.Errorf("summarize all sources: %w", err)
	}
	return result, nil
}

// sourceInstruction builds the system instruction for a single source digest
func (s *Summarizer) sourceInstruction(g domain.SourceGroup) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a news editor writing a digest of %d articles published by %s.\n", len(g.Articles), hostname(g.FeedURL))
	sb.WriteString("Requirements:\n")
	sb.WriteString("- include a link to every article covered\n")
	sb.WriteString("- preserve important facts, figures and quotes as written\n")
	sb.WriteString("- keep a neutral, factual tone\n")
	sb.WriteString("- respond with Markdown only, no preamble or commentary\n")
	fmt.Fprintf(&sb, "- write in %s\n", s.language)
	return sb.String()
}

// globalInstruction builds the system instruction for the cross-source overview
func (s *Summarizer) globalInstruction(articles, sources int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a news editor writing a cross-source overview of today's digest: %d articles from %d sources.\n", articles, sources)
	sb.WriteString("You are given one summary per source. Highlight the themes that span sources and the most significant stories.\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString("- keep a neutral, factual tone\n")
	sb.WriteString("- respond with Markdown only, no preamble or commentary\n")
	fmt.Fprintf(&sb, "- write in %s\n", s.language)
	return sb.String()
}

// sourceContext concatenates the group's article texts, each capped
func sourceContext(g domain.SourceGroup) string {
	var sb strings.Builder
	for _, a := range g.Articles {
		text := a.Text
		if len(text) > articleContextLimit {
			text = text[:articleContextLimit]
		}
		fmt.Fprintf(&sb, "## %s\n%s\n\n%s\n\n", a.Title, a.URL, text)
	}
	return sb.String()
}

// complete performs a single chat completion call
func (s *Summarizer) complete(ctx context.Context, instruction, body string) (string, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: float32(s.cfg.Temperature),
		MaxTokens:   s.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: body},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from generation service")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
