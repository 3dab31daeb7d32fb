package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL     string `env:"SCRAPER_BASE_URL"`
	SearchURL   string `env:"SCRAPER_SEARCH_URL"`
	ModelURL    string `env:"SCRAPER_MODEL_URL"`
	MaxListings int    `env:"SCRAPER_MAX_LISTINGS"`

	// RequestTimeout bounds a single fetch, HTTP or browser.
	RequestTimeout time.Duration `env:"SCRAPER_REQUEST_TIMEOUT"`
	// RequestDelay is the fixed pause between listing page fetches.
	RequestDelay time.Duration `env:"SCRAPER_REQUEST_DELAY"`
	// UserAgent pins one browser string for both fetchers; empty rotates per session.
	UserAgent string `env:"SCRAPER_USER_AGENT"`
	BypassCF  bool   `env:"SCRAPER_BYPASS_CLOUDFLARE"`

	Headless    bool          `env:"SCRAPER_HEADLESS"`
	SettleTime  time.Duration `env:"SCRAPER_SETTLE_TIME"`
	ScrollCount int           `env:"SCRAPER_SCROLLS"`
	ScrollPause time.Duration `env:"SCRAPER_SCROLL_PAUSE"`

	MinFragments int `env:"SCRAPER_MIN_FRAGMENTS"`

	CSVPath  string `env:"SCRAPER_CSV_PATH"`
	SoldOnly bool   `env:"SCRAPER_SOLD_ONLY"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://bringatrailer.com",
		SearchURL:      "https://bringatrailer.com/search/?s=honda+s2000",
		ModelURL:       "https://bringatrailer.com/honda/s2000/",
		MaxListings:    5,
		RequestTimeout: 10 * time.Second,
		RequestDelay:   2 * time.Second,
		BypassCF:       false,
		Headless:       true,
		SettleTime:     5 * time.Second,
		ScrollCount:    15,
		ScrollPause:    2 * time.Second,
		MinFragments:   5,
		CSVPath:        "s2000_data.csv",
		SoldOnly:       false,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load returns the defaults overridden by a .env file (if any) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", c.RequestTimeout)
	}
	if c.ScrollCount < 0 {
		return fmt.Errorf("scroll count must not be negative, got %d", c.ScrollCount)
	}
	if c.MaxListings < 0 {
		return fmt.Errorf("max listings must not be negative, got %d", c.MaxListings)
	}
	if c.CSVPath == "" {
		return fmt.Errorf("csv path is required")
	}
	return nil
}
