// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/job-assistant/internal/fetch"
	"github.com/jonathan/job-assistant/internal/ingestion"
	"github.com/jonathan/job-assistant/internal/llm"
)

// Defaults
const (
	DefaultPort       = 5001
	DefaultModelTier  = llm.TierStandard
	DefaultSessionTTL = 30 * 24 * time.Hour
	DefaultCacheTTL   = 24 * time.Hour
)

// Duration is a time.Duration that reads "10s" style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("duration must be a string or number of seconds")
	}
	*d = Duration(seconds * float64(time.Second))
	return nil
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config is loaded from an optional JSON file and the environment.
// All fields are optional; zero values take defaults in MergeWithDefaults.
type Config struct {
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`    // Scrape cache; empty disables caching
	Port        int    `json:"port,omitempty"`

	Model     string `json:"model,omitempty"`      // Overrides the model for ModelTier
	ModelTier string `json:"model_tier,omitempty"` // lite, standard or advanced

	FetchTimeout   Duration `json:"fetch_timeout,omitempty"`
	LLMTimeout     Duration `json:"llm_timeout,omitempty"`
	BrowserTimeout Duration `json:"browser_timeout,omitempty"`
	SessionTTL     Duration `json:"session_ttl,omitempty"`
	CacheTTL       Duration `json:"cache_ttl,omitempty"`

	UseBrowser bool `json:"use_browser,omitempty"` // Re-render short pages with headless Chrome
	Verbose    bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:           DefaultPort,
		ModelTier:      string(DefaultModelTier),
		FetchTimeout:   Duration(fetch.DefaultTimeout),
		LLMTimeout:     Duration(llm.DefaultTimeout),
		BrowserTimeout: Duration(fetch.DefaultBrowserTimeout),
		SessionTTL:     Duration(DefaultSessionTTL),
		CacheTTL:       Duration(DefaultCacheTTL),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration variables through getenv. Unset variables stay zero.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		APIKey:      getenv("GEMINI_API_KEY"),
		DatabaseURL: getenv("DATABASE_URL"),
		RedisURL:    getenv("REDIS_URL"),
		Model:       getenv("GEMINI_MODEL"),
		ModelTier:   getenv("GEMINI_MODEL_TIER"),
	}

	if raw := getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("config error: PORT must be an integer: %w", err)
		}
		cfg.Port = port
	}

	durations := []struct {
		key string
		dst *Duration
	}{
		{"FETCH_TIMEOUT", &cfg.FetchTimeout},
		{"LLM_TIMEOUT", &cfg.LLMTimeout},
		{"BROWSER_TIMEOUT", &cfg.BrowserTimeout},
		{"SESSION_TTL", &cfg.SessionTTL},
		{"CACHE_TTL", &cfg.CacheTTL},
	}
	for _, d := range durations {
		raw := getenv(d.key)
		if raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config error: %s: %w", d.key, err)
		}
		*d.dst = Duration(parsed)
	}

	for _, b := range []struct {
		key string
		dst *bool
	}{
		{"USE_BROWSER", &cfg.UseBrowser},
		{"VERBOSE", &cfg.Verbose},
	} {
		if raw := getenv(b.key); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("config error: %s must be a boolean: %w", b.key, err)
			}
			*b.dst = v
		}
	}

	return cfg, nil
}

// Load resolves configuration with precedence environment, then the file at
// path (if any), then Defaults. The result is validated.
func Load(path string, getenv func(string) string) (Config, error) {
	env, err := FromEnv(getenv)
	if err != nil {
		return Config{}, err
	}

	merged := *env
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		if err := file.Validate(); err != nil {
			return Config{}, err
		}
		merged = merged.MergeWithDefaults(*file)
		merged.UseBrowser = merged.UseBrowser || file.UseBrowser
		merged.Verbose = merged.Verbose || file.Verbose
	}

	merged = merged.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}

	for name, d := range map[string]Duration{
		"fetch_timeout":   c.FetchTimeout,
		"llm_timeout":     c.LLMTimeout,
		"browser_timeout": c.BrowserTimeout,
		"session_ttl":     c.SessionTTL,
		"cache_ttl":       c.CacheTTL,
	} {
		if d < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", name)
		}
	}

	if c.ModelTier != "" {
		if _, err := ParseTier(c.ModelTier); err != nil {
			return err
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// Bools are not merged since unset cannot be told apart from false.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	for _, f := range []struct{ dst, def *string }{
		{&result.APIKey, &defaults.APIKey},
		{&result.DatabaseURL, &defaults.DatabaseURL},
		{&result.RedisURL, &defaults.RedisURL},
		{&result.Model, &defaults.Model},
		{&result.ModelTier, &defaults.ModelTier},
	} {
		if *f.dst == "" {
			*f.dst = *f.def
		}
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}

	for _, f := range []struct{ dst, def *Duration }{
		{&result.FetchTimeout, &defaults.FetchTimeout},
		{&result.LLMTimeout, &defaults.LLMTimeout},
		{&result.BrowserTimeout, &defaults.BrowserTimeout},
		{&result.SessionTTL, &defaults.SessionTTL},
		{&result.CacheTTL, &defaults.CacheTTL},
	} {
		if *f.dst == 0 {
			*f.dst = *f.def
		}
	}

	return result
}

// ParseTier converts a tier name to an llm.ModelTier.
func ParseTier(name string) (llm.ModelTier, error) {
	switch tier := llm.ModelTier(strings.ToLower(strings.TrimSpace(name))); tier {
	case llm.TierLite, llm.TierStandard, llm.TierAdvanced:
		return tier, nil
	default:
		return "", fmt.Errorf("config error: unknown model tier %q (want lite, standard or advanced)", name)
	}
}

// Tier returns the configured tier, or the default when unset or invalid.
func (c *Config) Tier() llm.ModelTier {
	tier, err := ParseTier(c.ModelTier)
	if err != nil {
		return DefaultModelTier
	}
	return tier
}

// LLMConfig builds the completion client configuration.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.LLMTimeout > 0 {
		cfg = cfg.WithTimeout(time.Duration(c.LLMTimeout))
	}
	if c.Model != "" {
		cfg = cfg.WithModel(c.Tier(), c.Model)
	}
	return cfg
}

// ScraperOptions builds the scraper configuration.
func (c *Config) ScraperOptions() *ingestion.Options {
	fetchOpts := fetch.DefaultOptions()
	if c.FetchTimeout > 0 {
		fetchOpts.Timeout = time.Duration(c.FetchTimeout)
	}
	return &ingestion.Options{
		Fetch:          fetchOpts,
		UseBrowser:     c.UseBrowser,
		BrowserTimeout: time.Duration(c.BrowserTimeout),
		Verbose:        c.Verbose,
	}
}
