package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/furyhawk/barstats/internal/aggregator"
	"github.com/furyhawk/barstats/internal/charts"
	"github.com/furyhawk/barstats/internal/model"
	"github.com/furyhawk/barstats/internal/pipeline"
	"github.com/furyhawk/barstats/internal/report"
)

var (
	statsPreset   string
	statsSeason0  bool
	statsMinGames int
	statsSized    bool
	statsTop      int
	statsChart    string
)

// statsCmd is the cobra command for the full per-map/faction/teammate analysis.
var statsCmd = &cobra.Command{
	Use:   "stats <username>",
	Short: "Win rates per map, faction and teammate for a player",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsPreset, "preset", "all", "match preset: duel, team, ffa or all")
	statsCmd.Flags().BoolVar(&statsSeason0, "season0", true, "restrict to matches since the current rating era")
	statsCmd.Flags().IntVar(&statsMinGames, "min-games", 5, "minimum games for a row to be shown")
	statsCmd.Flags().BoolVar(&statsSized, "sized", false, "split map rows by team size (e.g. glitters_2v2)")
	statsCmd.Flags().IntVar(&statsTop, "top", 10, "number of teammates to show")
	statsCmd.Flags().StringVar(&statsChart, "chart", "", "also write the map win rates to an HTML chart file")
}

func runStats(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, store, cfg, err := openClient()
	if err != nil {
		return err
	}
	defer store.Close()

	applyQueryDefaults(cfg, cmd.Flags(), &statsPreset, &statsSeason0, &statsMinGames)
	preset, err := model.ParsePreset(statsPreset)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	resolver, err := pipeline.LoadResolver(ctx, client)
	if err != nil {
		return err
	}
	userID, ok := resolver.UserID(name)
	if !ok {
		return fmt.Errorf("unknown player %q", name)
	}

	p := pipeline.New(client)
	details, err := p.FetchUserMatches(ctx, name, preset, statsSeason0, func(done, total int, matchID string) {
		fmt.Fprintf(os.Stderr, "\r[%d/%d] %s", done, total, matchID)
		if done == total {
			fmt.Fprintln(os.Stderr)
		}
	})
	if err != nil {
		return err
	}
	if len(details) == 0 {
		fmt.Fprintf(os.Stderr, "No matches found for %q\n", name)
		return nil
	}

	records := pipeline.Normalize(details, statsSized)
	report.PrintSummary(os.Stdout, name, preset, records, userID)

	mapRows := aggregator.WinRateByMap(records, userID, statsMinGames)
	fmt.Fprintln(os.Stdout, "Win rate by map (worst first):")
	report.PrintWinRateTable(os.Stdout, "Map.fileName", mapRows)

	fmt.Fprintln(os.Stdout, "\nWin rate by faction:")
	report.PrintWinRateTable(os.Stdout, "faction", aggregator.WinRateByFaction(records, userID))

	teammates := aggregator.Teammates(records, userID, statsMinGames)
	report.PrintTeammateTables(os.Stdout, teammates, statsTop)

	if statsChart != "" {
		cfg := charts.DefaultConfig()
		cfg.Title = fmt.Sprintf("%s win rate by map", name)
		cfg.Subtitle = fmt.Sprintf("preset %s, min %d games", preset, statsMinGames)
		if err := charts.RenderWinRates(mapRows, cfg, statsChart); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "\nChart written to %s\n", statsChart)
	}
	return nil
}
