// Package config loads typed application configuration from a TOML file
// with environment-variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values. The retrieval constants must keep these
// exact defaults for behavioural compatibility; see the ranker package.
const (
	DefaultAddr            = ":3000"
	DefaultKnowledgePath   = "docs.json"
	DefaultMinScore        = 0.22
	DefaultHistoryLimit    = 10
	DefaultIntentThreshold = 0.4
	DefaultRateLimit       = 100
	DefaultRateWindow      = 15 * time.Minute
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Provider  ProviderConfig  `toml:"provider"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Storage   StorageConfig   `toml:"storage"`
	Knowledge KnowledgeConfig `toml:"knowledge"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address (default ":3000").
	Addr string `toml:"addr"`
}

// ProviderConfig configures the remote embedding and completion providers.
type ProviderConfig struct {
	// BaseURL is the OpenAI-compatible API base. Empty uses the
	// adapter default (OpenRouter).
	BaseURL string `toml:"base_url"`

	// APIKey is normally supplied via the SAMCHAT_API_KEY or
	// OPENROUTER_API_KEY environment variable, not the config file.
	APIKey string `toml:"api_key"`

	// EmbeddingModel and ChatModel select the provider models.
	EmbeddingModel string `toml:"embedding_model"`
	ChatModel      string `toml:"chat_model"`
}

// RetrievalConfig configures the ranking pipeline.
type RetrievalConfig struct {
	// MinScore is the relevance guardrail threshold (default 0.22).
	MinScore float64 `toml:"min_score"`

	// HistoryLimit is how many prior messages go into the generation
	// prompt (default 10).
	HistoryLimit int `toml:"history_limit"`

	// IntentThreshold is the maximum normalized edit distance for the
	// intent matcher (default 0.4).
	IntentThreshold float64 `toml:"intent_threshold"`
}

// StorageConfig configures persistence.
type StorageConfig struct {
	// DataDir holds the SQLite database. Empty uses ~/.samchat/data.
	DataDir string `toml:"data_dir"`
}

// KnowledgeConfig configures the knowledge base.
type KnowledgeConfig struct {
	// Path is the JSON document file (default "docs.json").
	Path string `toml:"path"`
}

// RateLimitConfig configures the per-client API rate limit.
type RateLimitConfig struct {
	// Requests per Window per client IP (default 100 per "15m").
	Requests int    `toml:"requests"`
	Window   string `toml:"window"`
}

// WindowDuration parses the configured window, falling back to the
// default on an empty or malformed value.
func (r RateLimitConfig) WindowDuration() time.Duration {
	d, err := time.ParseDuration(r.Window)
	if err != nil || d <= 0 {
		return DefaultRateWindow
	}
	return d
}

// Default returns a Config populated with all defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: DefaultAddr},
		Retrieval: RetrievalConfig{
			MinScore:        DefaultMinScore,
			HistoryLimit:    DefaultHistoryLimit,
			IntentThreshold: DefaultIntentThreshold,
		},
		Knowledge: KnowledgeConfig{Path: DefaultKnowledgePath},
		RateLimit: RateLimitConfig{
			Requests: DefaultRateLimit,
			Window:   DefaultRateWindow.String(),
		},
	}
}

// Load reads the config file at path (optional - an empty path or a
// missing file yields defaults), then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		} else if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	// Secrets come from the environment in preference to the file.
	if key := os.Getenv("SAMCHAT_API_KEY"); key != "" {
		cfg.Provider.APIKey = key
	} else if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		cfg.Provider.APIKey = key
	}

	if cfg.Retrieval.MinScore <= 0 {
		cfg.Retrieval.MinScore = DefaultMinScore
	}
	if cfg.Retrieval.HistoryLimit <= 0 {
		cfg.Retrieval.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.RateLimit.Requests <= 0 {
		cfg.RateLimit.Requests = DefaultRateLimit
	}

	return cfg, nil
}
