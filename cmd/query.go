package cmd

import (
	"github.com/spf13/pflag"

	"github.com/furyhawk/barstats/internal/config"
)

// applyQueryDefaults replaces the built-in query flag defaults with the
// configured ones for every flag the user did not set explicitly. A nil
// target skips the flag (not every command carries all three).
func applyQueryDefaults(cfg *config.Config, flags *pflag.FlagSet, preset *string, season0 *bool, minGames *int) {
	if preset != nil && !flags.Changed("preset") {
		*preset = cfg.Query.Preset
	}
	if season0 != nil && !flags.Changed("season0") {
		*season0 = cfg.Query.Season0
	}
	if minGames != nil && !flags.Changed("min-games") {
		*minGames = cfg.Query.MinGames
	}
}
