package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Feeds []string `yaml:"feeds" json:"feeds" jsonschema:"required,description=RSS/Atom feed URLs to digest"`

	Output struct {
		Dir      string `yaml:"dir" json:"dir" jsonschema:"default=digests,description=Directory for generated digest files"`
		Language string `yaml:"language" json:"language" jsonschema:"default=English,description=Language for generated summaries"`
	} `yaml:"output" json:"output" jsonschema:"description=Output configuration"`

	Cache struct {
		Dir       string        `yaml:"dir" json:"dir" jsonschema:"default=.newsdigest/cache,description=Directory for the article text cache"`
		Freshness time.Duration `yaml:"freshness" json:"freshness" jsonschema:"default=6h,description=Age after which a cached article stops being served"`
		Retention time.Duration `yaml:"retention" json:"retention" jsonschema:"default=24h,description=Age after which a cached article is deleted by cleanup"`
	} `yaml:"cache" json:"cache" jsonschema:"description=Article cache configuration"`

	Fetch struct {
		FeedTimeout    time.Duration `yaml:"feed_timeout" json:"feed_timeout" jsonschema:"default=30s,description=Timeout per feed fetch"`
		ArticleTimeout time.Duration `yaml:"article_timeout" json:"article_timeout" jsonschema:"default=10s,description=Timeout per article fetch"`
		ItemLimit      int           `yaml:"item_limit" json:"item_limit" jsonschema:"default=5,description=Maximum items taken from each feed"`
		UserAgent      string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=NewsDigest/1.0,description=User agent for article requests"`
	} `yaml:"fetch" json:"fetch" jsonschema:"description=Fetching configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for digest generation"`

	History struct {
		DSN string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newsdigest.db?cache=shared&mode=rwc,description=SQLite connection string for run history"`
	} `yaml:"history" json:"history" jsonschema:"description=Run history configuration"`
}

// LLMConfig holds settings for the text-generation service
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.4,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for output
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "digests"
	}
	if cfg.Output.Language == "" {
		cfg.Output.Language = "English"
	}

	// set defaults for cache
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = ".newsdigest/cache"
	}
	if cfg.Cache.Freshness == 0 {
		cfg.Cache.Freshness = 6 * time.Hour
	}
	if cfg.Cache.Retention == 0 {
		cfg.Cache.Retention = 24 * time.Hour
	}

	// set defaults for fetching
	if cfg.Fetch.FeedTimeout == 0 {
		cfg.Fetch.FeedTimeout = 30 * time.Second
	}
	if cfg.Fetch.ArticleTimeout == 0 {
		cfg.Fetch.ArticleTimeout = 10 * time.Second
	}
	if cfg.Fetch.ItemLimit == 0 {
		cfg.Fetch.ItemLimit = 5
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "NewsDigest/1.0"
	}

	// set defaults for LLM
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.4
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 2000
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}

	// set defaults for history
	if cfg.History.DSN == "" {
		cfg.History.DSN = "file:newsdigest.db?cache=shared&mode=rwc"
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if len(cfg.Feeds) == 0 {
		return fmt.Errorf("at least one feed is required")
	}

	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	if cfg.Fetch.FeedTimeout < time.Second {
		return fmt.Errorf("fetch.feed_timeout must be at least 1 second")
	}
	if cfg.Fetch.ArticleTimeout < time.Second {
		return fmt.Errorf("fetch.article_timeout must be at least 1 second")
	}
	if cfg.Fetch.ItemLimit < 1 {
		return fmt.Errorf("fetch.item_limit must be at least 1")
	}

	if cfg.Cache.Freshness > cfg.Cache.Retention {
		return fmt.Errorf("cache.freshness must not exceed cache.retention")
	}

	return nil
}
