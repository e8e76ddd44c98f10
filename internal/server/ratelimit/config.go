package ratelimit

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (prefix match when it ends with "/")
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// envConfig mirrors the RATE_LIMIT_* environment variables
type envConfig struct {
	Enabled         bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	DefaultLimit    int           `env:"RATE_LIMIT_DEFAULT_LIMIT" envDefault:"600"`
	DefaultWindow   time.Duration `env:"RATE_LIMIT_DEFAULT_WINDOW" envDefault:"1m"`
	GenerateLimit   int           `env:"RATE_LIMIT_GENERATE_LIMIT" envDefault:"30"`
	GenerateWindow  time.Duration `env:"RATE_LIMIT_GENERATE_WINDOW" envDefault:"1h"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	Whitelist       string        `env:"RATE_LIMIT_WHITELIST"`
	Blacklist       string        `env:"RATE_LIMIT_BLACKLIST"`
}

// LoadConfig loads rate limiting configuration from environment variables.
// Malformed values fall back to the defaults.
func LoadConfig() *Config {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		raw = envConfig{}
		_ = env.ParseWithOptions(&raw, env.Options{Environment: map[string]string{}})
	}

	if !raw.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    raw.DefaultLimit,
		DefaultWindow:   raw.DefaultWindow,
		CleanupInterval: raw.CleanupInterval,
		Whitelist:       parseIPList(raw.Whitelist),
		Blacklist:       parseIPList(raw.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(raw.GenerateLimit, raw.GenerateWindow),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations.
// Generation endpoints call the paid upstream engine and get the strict limit.
func DefaultEndpointConfigs(generateLimit int, generateWindow time.Duration) []EndpointConfig {
	burst := min(generateLimit, 3)
	return []EndpointConfig{
		// Generation (strictest)
		{Path: "/sessions", Method: "POST", Limit: generateLimit, Window: generateWindow, Burst: burst},
		{Path: "/sessions/stream", Method: "POST", Limit: generateLimit, Window: generateWindow, Burst: burst},

		// Tone edits
		{Path: "/tones/", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/tones/reset", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},

		// Reads use the default limit; health is unlimited in the matcher
	}
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
