// Package config provides configuration loading and validation for the
// scraper. Values come from defaults, an optional JSON config file, and
// environment variable overrides, in that order.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all tunable knobs of the pipeline. Historical variants of the
// scraper hard-coded different candidate and extraction caps; they are
// parameters here, with the defaults below.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // Postgres artifact store; empty uses the file store
	ArtifactDir string `json:"artifact_dir,omitempty"`

	// Discovery and fetching
	MaxLinks         int  `json:"max_links,omitempty"`          // SERP results kept per keyword
	MaxPages         int  `json:"max_pages,omitempty"`          // candidate pages fetched per run
	MaxBatchKeywords int  `json:"max_batch_keywords,omitempty"` // keywords per batch request
	BrowserSessions  int  `json:"browser_sessions,omitempty"`   // concurrent headless sessions
	UseBrowser       bool `json:"use_browser,omitempty"`        // render pages in headless Chrome
	Verbose          bool `json:"verbose,omitempty"`

	// Extraction caps
	MaxEmails    int `json:"max_emails,omitempty"`
	MaxPhones    int `json:"max_phones,omitempty"`
	MaxSocial    int `json:"max_social,omitempty"`
	NameWindow   int `json:"name_window,omitempty"`
	MaxJobTitles int `json:"max_job_titles,omitempty"`

	// Budgets, in seconds
	RunTimeoutSec    int `json:"run_timeout_sec,omitempty"`
	PageTimeoutSec   int `json:"page_timeout_sec,omitempty"`
	SearchTimeoutSec int `json:"search_timeout_sec,omitempty"`
	ArtifactTTLSec   int `json:"artifact_ttl_sec,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Port:             8080,
		ArtifactDir:      os.TempDir(),
		MaxLinks:         10,
		MaxPages:         5,
		MaxBatchKeywords: 5,
		BrowserSessions:  2,
		UseBrowser:       true,
		MaxEmails:        20,
		MaxPhones:        5,
		MaxSocial:        5,
		NameWindow:       40,
		MaxJobTitles:     2,
		RunTimeoutSec:    40,
		PageTimeoutSec:   8,
		SearchTimeoutSec: 15,
		ArtifactTTLSec:   3600,
	}
}

// Load builds the configuration from defaults, an optional JSON file, and
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv layers environment variable overrides onto the config.
func (c *Config) applyEnv() {
	c.Port = getEnvInt("PORT", c.Port)
	c.DatabaseURL = getEnvString("DATABASE_URL", c.DatabaseURL)
	c.ArtifactDir = getEnvString("ARTIFACT_DIR", c.ArtifactDir)
	c.MaxLinks = getEnvInt("SCRAPER_MAX_LINKS", c.MaxLinks)
	c.MaxPages = getEnvInt("SCRAPER_MAX_PAGES", c.MaxPages)
	c.MaxBatchKeywords = getEnvInt("SCRAPER_MAX_BATCH_KEYWORDS", c.MaxBatchKeywords)
	c.BrowserSessions = getEnvInt("SCRAPER_BROWSER_SESSIONS", c.BrowserSessions)
	c.UseBrowser = getEnvBool("SCRAPER_USE_BROWSER", c.UseBrowser)
	c.Verbose = getEnvBool("SCRAPER_VERBOSE", c.Verbose)
	c.MaxEmails = getEnvInt("SCRAPER_MAX_EMAILS", c.MaxEmails)
	c.MaxPhones = getEnvInt("SCRAPER_MAX_PHONES", c.MaxPhones)
	c.MaxSocial = getEnvInt("SCRAPER_MAX_SOCIAL", c.MaxSocial)
	c.NameWindow = getEnvInt("SCRAPER_NAME_WINDOW", c.NameWindow)
	c.MaxJobTitles = getEnvInt("SCRAPER_MAX_JOB_TITLES", c.MaxJobTitles)
	c.RunTimeoutSec = getEnvInt("SCRAPER_RUN_TIMEOUT_SEC", c.RunTimeoutSec)
	c.PageTimeoutSec = getEnvInt("SCRAPER_PAGE_TIMEOUT_SEC", c.PageTimeoutSec)
	c.SearchTimeoutSec = getEnvInt("SCRAPER_SEARCH_TIMEOUT_SEC", c.SearchTimeoutSec)
	c.ArtifactTTLSec = getEnvInt("SCRAPER_ARTIFACT_TTL_SEC", c.ArtifactTTLSec)
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in 1..65535")
	}
	if c.MaxLinks < 1 {
		return fmt.Errorf("config error: 'max_links' must be positive")
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("config error: 'max_pages' must be positive")
	}
	if c.MaxBatchKeywords < 1 {
		return fmt.Errorf("config error: 'max_batch_keywords' must be positive")
	}
	if c.RunTimeoutSec < 1 || c.PageTimeoutSec < 1 || c.SearchTimeoutSec < 1 {
		return fmt.Errorf("config error: timeouts must be positive")
	}
	return nil
}

// RunTimeout is the wall-clock budget for one pipeline run.
func (c *Config) RunTimeout() time.Duration { return time.Duration(c.RunTimeoutSec) * time.Second }

// PageTimeout is the per-page navigation budget.
func (c *Config) PageTimeout() time.Duration { return time.Duration(c.PageTimeoutSec) * time.Second }

// SearchTimeout is the SERP navigation budget.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.SearchTimeoutSec) * time.Second
}

// ArtifactTTL is how long stored artifacts are retained.
func (c *Config) ArtifactTTL() time.Duration { return time.Duration(c.ArtifactTTLSec) * time.Second }

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
