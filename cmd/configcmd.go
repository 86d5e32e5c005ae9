package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/furyhawk/barstats/internal/config"
)

// configCmd groups the configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to ~/.barstats/config.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if err := cfg.Save(); err != nil {
			return err
		}
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s/config.toml\n", dir)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "api.base_url      = %s\n", cfg.API.BaseURL)
		fmt.Fprintf(out, "api.timeout       = %s\n", cfg.API.Timeout)
		path, err := cfg.CachePath()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "cache.path        = %s\n", path)
		fmt.Fprintf(out, "cache.durable_ttl = %s\n", cfg.Cache.DurableTTL)
		fmt.Fprintf(out, "cache.volatile_ttl = %s\n", cfg.Cache.VolatileTTL)
		fmt.Fprintf(out, "query.preset      = %s\n", cfg.Query.Preset)
		fmt.Fprintf(out, "query.season0     = %v\n", cfg.Query.Season0)
		fmt.Fprintf(out, "query.min_games   = %d\n", cfg.Query.MinGames)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
