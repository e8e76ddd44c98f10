// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jonathan/wordsmithery/internal/types"
	"github.com/jonathan/wordsmithery/internal/webhook"
)

// Backend names accepted in the configuration
const (
	BackendWebhook = "webhook"
	BackendGemini  = "gemini"
	BackendOpenAI  = "openai"
)

// Config represents the configuration that can be loaded from a JSON file and the environment.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Generation engine
	Endpoint string `json:"endpoint,omitempty" env:"WORDSMITHERY_ENDPOINT"` // Workflow webhook URL
	Source   string `json:"source,omitempty" env:"WORDSMITHERY_SOURCE"`     // Attribution tag sent with each call
	Backend  string `json:"backend,omitempty" env:"WORDSMITHERY_BACKEND"`   // webhook, gemini or openai
	Model    string `json:"model,omitempty" env:"WORDSMITHERY_MODEL"`       // Model name for direct backends
	APIKey   string `json:"api_key,omitempty"`                              // Key for direct backends
	BaseURL  string `json:"base_url,omitempty" env:"OPENAI_BASE_URL"`       // OpenAI-compatible endpoint

	// Storage
	StorePath   string `json:"store_path,omitempty" env:"WORDSMITHERY_STORE_PATH"` // SQLite file for tone profiles
	DatabaseURL string `json:"database_url,omitempty" env:"DATABASE_URL"`          // PostgreSQL URL, overrides StorePath

	// Behavior
	StripHeaders *bool    `json:"strip_headers,omitempty"`                    // Remove channel headers from copy
	Timeout      Duration `json:"timeout,omitempty" env:"WORDSMITHERY_TIMEOUT"` // Zero keeps the transport default
	Port         int      `json:"port,omitempty" env:"PORT"`
	Verbose      bool     `json:"verbose,omitempty"`
}

// Duration is a time.Duration that reads "30s" style strings from JSON and env
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Defaults returns the configuration used when nothing else is set
func Defaults() Config {
	strip := true
	return Config{
		Endpoint:     webhook.DefaultEndpoint,
		Source:       types.DefaultSource,
		Backend:      BackendWebhook,
		StorePath:    DefaultStorePath(),
		StripHeaders: &strip,
		Port:         8080,
	}
}

// DefaultStorePath returns the SQLite path under the user config directory
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "wordsmithery.db"
	}
	return filepath.Join(dir, "wordsmithery", "wordsmithery.db")
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// ApplyEnv overlays environment variables onto the configuration.
// Only variables that are set replace existing values.
func (c *Config) ApplyEnv() error {
	var fromEnv Config
	if err := env.Parse(&fromEnv); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	merged := fromEnv.MergeWithDefaults(*c)
	if fromEnv.APIKey == "" {
		merged.APIKey = c.APIKey
	}
	if merged.APIKey == "" {
		merged.APIKey = apiKeyFromEnv(merged.Backend)
	}
	*c = merged
	return nil
}

// apiKeyFromEnv picks the provider-specific key variable
func apiKeyFromEnv(backend string) string {
	switch backend {
	case BackendOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Backend {
	case "", BackendWebhook:
		if c.Endpoint != "" {
			parsed, err := url.Parse(c.Endpoint)
			if err != nil || parsed.Scheme == "" || parsed.Host == "" {
				return fmt.Errorf("config error: 'endpoint' must be an absolute URL")
			}
		}
	case BackendGemini, BackendOpenAI:
		if c.APIKey == "" {
			return fmt.Errorf("config error: backend %q requires an API key", c.Backend)
		}
	default:
		return fmt.Errorf("config error: unknown backend %q", c.Backend)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("config error: 'timeout' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Endpoint == "" {
		result.Endpoint = defaults.Endpoint
	}
	if result.Source == "" {
		result.Source = defaults.Source
	}
	if result.Backend == "" {
		result.Backend = defaults.Backend
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Pointer and numeric fields: use default if unset
	if result.StripHeaders == nil {
		result.StripHeaders = defaults.StripHeaders
	}
	if result.Timeout == 0 {
		result.Timeout = defaults.Timeout
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we OR them
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// ShouldStripHeaders reports the effective strip_headers setting
func (c *Config) ShouldStripHeaders() bool {
	return c.StripHeaders == nil || *c.StripHeaders
}

// Resolve builds the effective configuration: defaults, then the optional file, then the environment.
func Resolve(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
