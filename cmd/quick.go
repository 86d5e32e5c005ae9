package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/furyhawk/barstats/internal/aggregator"
	"github.com/furyhawk/barstats/internal/model"
	"github.com/furyhawk/barstats/internal/pipeline"
	"github.com/furyhawk/barstats/internal/report"
)

var (
	quickPreset   string
	quickSeason0  bool
	quickMinGames int
)

// quickCmd is the cobra command for the listing-only map analysis. It skips
// the per-match detail fetches, so it is fast but map-only.
var quickCmd = &cobra.Command{
	Use:   "quick <username>",
	Short: "Fast map win rates from the match listing alone",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuick,
}

func init() {
	quickCmd.Flags().StringVar(&quickPreset, "preset", "all", "match preset: duel, team, ffa or all")
	quickCmd.Flags().BoolVar(&quickSeason0, "season0", true, "restrict to matches since the current rating era")
	quickCmd.Flags().IntVar(&quickMinGames, "min-games", 5, "minimum games for a row to be shown")
}

func runQuick(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, store, cfg, err := openClient()
	if err != nil {
		return err
	}
	defer store.Close()

	applyQueryDefaults(cfg, cmd.Flags(), &quickPreset, &quickSeason0, &quickMinGames)
	preset, err := model.ParsePreset(quickPreset)
	if err != nil {
		return err
	}

	records, err := pipeline.New(client).QuickRecords(cmd.Context(), name, preset, quickSeason0)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(os.Stderr, "No matches found for %q\n", name)
		return nil
	}

	fmt.Fprintf(os.Stdout, "\nPlayer: %s  |  Preset: %s  |  Games: %d\n\n", name, preset, len(records))
	fmt.Fprintln(os.Stdout, "Win rate by map (worst first):")
	report.PrintWinRateTable(os.Stdout, "Map.fileName", aggregator.QuickWinRateByMap(records, quickMinGames))
	return nil
}
