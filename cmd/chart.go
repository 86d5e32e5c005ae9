package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/furyhawk/barstats/internal/aggregator"
	"github.com/furyhawk/barstats/internal/charts"
	"github.com/furyhawk/barstats/internal/config"
	"github.com/furyhawk/barstats/internal/model"
	"github.com/furyhawk/barstats/internal/pipeline"
)

var (
	chartPreset   string
	chartSeason0  bool
	chartMinGames int
	chartOut      string
	chartOpen     bool
)

// chartCmd renders a player's map win rates as an HTML bar chart.
var chartCmd = &cobra.Command{
	Use:   "chart <username>",
	Short: "Render map win rates as an HTML chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().StringVar(&chartPreset, "preset", "all", "match preset: duel, team, ffa or all")
	chartCmd.Flags().BoolVar(&chartSeason0, "season0", true, "restrict to matches since the current rating era")
	chartCmd.Flags().IntVar(&chartMinGames, "min-games", 5, "minimum games for a bar to be shown")
	chartCmd.Flags().StringVar(&chartOut, "out", "", "output HTML path (default <username>.html in the app dir)")
	chartCmd.Flags().BoolVar(&chartOpen, "open", false, "open the chart in the default browser")
}

func runChart(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, store, cfg, err := openClient()
	if err != nil {
		return err
	}
	defer store.Close()

	applyQueryDefaults(cfg, cmd.Flags(), &chartPreset, &chartSeason0, &chartMinGames)
	preset, err := model.ParsePreset(chartPreset)
	if err != nil {
		return err
	}

	records, err := pipeline.New(client).QuickRecords(cmd.Context(), name, preset, chartSeason0)
	if err != nil {
		return err
	}
	rows := aggregator.QuickWinRateByMap(records, chartMinGames)
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "No maps with at least %d games for %q\n", chartMinGames, name)
		return nil
	}

	out := chartOut
	if out == "" {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		out = filepath.Join(dir, name+".html")
	}

	chartCfg := charts.DefaultConfig()
	chartCfg.Title = fmt.Sprintf("%s win rate by map", name)
	chartCfg.Subtitle = fmt.Sprintf("preset %s, min %d games", preset, chartMinGames)
	if err := charts.RenderWinRates(rows, chartCfg, out); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", out)

	if chartOpen {
		return charts.OpenInBrowser(out)
	}
	return nil
}
