// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// BaseURL is the upstream PokeAPI root, without a trailing slash.
	BaseURL string `koanf:"base_url"`

	// RequestTimeoutMS bounds every single upstream HTTP call.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// BatchSize bounds concurrent species fetches per generation.
	BatchSize int `koanf:"batch_size"`

	// CacheFile is the path of the persisted snapshot.
	CacheFile string `koanf:"cache_file"`

	// MaxPageLimit caps the limit query parameter on list endpoints.
	MaxPageLimit int `koanf:"max_page_limit"`

	// RateLimitWindowMS is the sliding window length for rate limiting.
	RateLimitWindowMS int `koanf:"rate_limit_window_ms"`

	// RateLimitMax is the number of requests admitted per client per window.
	RateLimitMax int `koanf:"rate_limit_max"`

	// RateLimitMaxClients caps the number of distinct tracked clients.
	RateLimitMaxClients int `koanf:"rate_limit_max_clients"`

	// RateLimitSweepIntervalMS sets the background prune interval.
	RateLimitSweepIntervalMS int `koanf:"rate_limit_sweep_interval_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                 "info",
		Addr:                     ":8000",
		BaseURL:                  "https://pokeapi.co/api/v2",
		RequestTimeoutMS:         5_000,
		BatchSize:                25,
		CacheFile:                "./pokemon-cache.json",
		MaxPageLimit:             100,
		RateLimitWindowMS:        15 * 60 * 1000,
		RateLimitMax:             100,
		RateLimitMaxClients:      500,
		RateLimitSweepIntervalMS: 60 * 1000,
	}
}
