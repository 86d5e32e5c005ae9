package cmd

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/furyhawk/barstats/internal/config"
)

func queryFlags() (*pflag.FlagSet, *string, *bool, *int) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	preset := flags.String("preset", "all", "")
	season0 := flags.Bool("season0", true, "")
	minGames := flags.Int("min-games", 5, "")
	return flags, preset, season0, minGames
}

func TestApplyQueryDefaultsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Query.Preset = "duel"
	cfg.Query.Season0 = false
	cfg.Query.MinGames = 3

	flags, preset, season0, minGames := queryFlags()
	applyQueryDefaults(cfg, flags, preset, season0, minGames)

	if *preset != "duel" || *season0 != false || *minGames != 3 {
		t.Errorf("unset flags must take the configured defaults, got %q %v %d",
			*preset, *season0, *minGames)
	}
}

func TestApplyQueryDefaultsFlagWins(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Query.Preset = "duel"
	cfg.Query.MinGames = 3

	flags, preset, season0, minGames := queryFlags()
	if err := flags.Set("preset", "ffa"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	applyQueryDefaults(cfg, flags, preset, season0, minGames)

	if *preset != "ffa" {
		t.Errorf("an explicit flag must beat the config, got %q", *preset)
	}
	if *minGames != 3 {
		t.Errorf("untouched flags still follow the config, got %d", *minGames)
	}
}

func TestApplyQueryDefaultsNilTargets(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Query.Preset = "team"

	flags, preset, _, _ := queryFlags()
	applyQueryDefaults(cfg, flags, preset, nil, nil)

	if *preset != "team" {
		t.Errorf("preset must still apply with other targets nil, got %q", *preset)
	}
}
