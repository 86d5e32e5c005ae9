package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/furyhawk/barstats/internal/bar"
	"github.com/furyhawk/barstats/internal/cache"
	"github.com/furyhawk/barstats/internal/config"
)

var (
	baseURL   string
	cachePath string
)

var rootCmd = &cobra.Command{
	Use:   "barstats",
	Short: "Beyond All Reason win-rate statistics",
	Long:  "Fetch a player's match history from the replay service and compute win rates per map, faction and teammate, plus live battle predictions.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "replay service URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "path to cache database (overrides config)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(battleCmd)
	rootCmd.AddCommand(whoisCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig merges the on-disk configuration with the root flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if cachePath != "" {
		cfg.Cache.Path = cachePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the response cache named by the configuration.
func openStore(cfg *config.Config) (*cache.Store, error) {
	path, err := cfg.CachePath()
	if err != nil {
		return nil, err
	}
	durable, volatile, err := cfg.TTLs()
	if err != nil {
		return nil, err
	}
	store, err := cache.Open(path, durable, volatile)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return store, nil
}

// openClient builds the replay client over the configured cache and hands
// back the effective configuration. The caller closes the returned store.
func openClient() (*bar.Client, *cache.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	timeout, err := cfg.HTTPTimeout()
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}
	return bar.NewClient(cfg.API.BaseURL, store, timeout), store, cfg, nil
}
