// Package config loads and persists the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	API   APIConfig   `toml:"api"`
	Cache CacheConfig `toml:"cache"`
	Query QueryConfig `toml:"query"`
}

// APIConfig contains replay-service client settings.
type APIConfig struct {
	BaseURL string `toml:"base_url"` // Replay service root URL
	Timeout string `toml:"timeout"`  // HTTP timeout (e.g., "15s")
}

// CacheConfig contains response cache settings.
type CacheConfig struct {
	Path        string `toml:"path"`         // Cache database path ("" = default)
	DurableTTL  string `toml:"durable_ttl"`  // TTL for match details and the roster
	VolatileTTL string `toml:"volatile_ttl"` // TTL for listings and live battles
}

// QueryConfig contains the default query parameters.
type QueryConfig struct {
	Preset   string `toml:"preset"`    // duel, team, ffa or all
	Season0  bool   `toml:"season0"`   // Restrict to the current rating era
	MinGames int    `toml:"min_games"` // Minimum games per aggregation row
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://api.bar-rts.com",
			Timeout: "15s",
		},
		Cache: CacheConfig{
			Path:        "",
			DurableTTL:  "720h",
			VolatileTTL: "60s",
		},
		Query: QueryConfig{
			Preset:   "all",
			Season0:  true,
			MinGames: 5,
		},
	}
}

// Dir returns the application data directory, creating it if needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".barstats")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns the default config if no
// file exists yet.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &config, nil
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// HTTPTimeout parses the configured HTTP timeout.
func (c *Config) HTTPTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api timeout %q: %w", c.API.Timeout, err)
	}
	return d, nil
}

// TTLs parses the configured cache lifetimes.
func (c *Config) TTLs() (durable, volatile time.Duration, err error) {
	durable, err = time.ParseDuration(c.Cache.DurableTTL)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid durable ttl %q: %w", c.Cache.DurableTTL, err)
	}
	volatile, err = time.ParseDuration(c.Cache.VolatileTTL)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid volatile ttl %q: %w", c.Cache.VolatileTTL, err)
	}
	return durable, volatile, nil
}

// CachePath returns the cache database path, defaulting to the app dir.
func (c *Config) CachePath() (string, error) {
	if c.Cache.Path != "" {
		return c.Cache.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.db"), nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if _, err := c.HTTPTimeout(); err != nil {
		return err
	}
	if _, _, err := c.TTLs(); err != nil {
		return err
	}
	switch c.Query.Preset {
	case "duel", "team", "ffa", "all":
	default:
		return fmt.Errorf("query.preset must be duel, team, ffa or all, got %q", c.Query.Preset)
	}
	if c.Query.MinGames < 0 {
		return fmt.Errorf("query.min_games must not be negative")
	}
	return nil
}
