package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/furyhawk/barstats/internal/model"
	"github.com/furyhawk/barstats/internal/pipeline"
	"github.com/furyhawk/barstats/internal/predictor"
	"github.com/furyhawk/barstats/internal/report"
)

var (
	battlePreset  string
	battleSeason0 bool
)

// battleCmd is the cobra command for the live-lobby prediction: roster of
// the most popular open battle, each player's record on its map, and a
// weighted win probability per side.
var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Predict the most popular open battle",
	Args:  cobra.NoArgs,
	RunE:  runBattle,
}

func init() {
	battleCmd.Flags().StringVar(&battlePreset, "preset", "all", "match preset for player histories")
	battleCmd.Flags().BoolVar(&battleSeason0, "season0", true, "restrict histories to the current rating era")
}

func runBattle(cmd *cobra.Command, args []string) error {
	client, store, cfg, err := openClient()
	if err != nil {
		return err
	}
	defer store.Close()

	applyQueryDefaults(cfg, cmd.Flags(), &battlePreset, &battleSeason0, nil)
	preset, err := model.ParsePreset(battlePreset)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	lobby, err := predictor.TopBattle(ctx, client)
	if err != nil {
		return err
	}

	p := pipeline.New(client)
	history := func(ctx context.Context, username string) ([]model.MatchRecord, error) {
		return p.QuickRecords(ctx, username, preset, battleSeason0)
	}
	stats := predictor.PlayerStats(ctx, lobby, history)
	team1, team2 := predictor.Predict(stats)

	report.PrintBattleReport(cmd.OutOrStdout(), lobby, stats, team1, team2)
	return nil
}
