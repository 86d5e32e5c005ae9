// Package charts renders win-rate aggregations as interactive HTML charts.
package charts

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/furyhawk/barstats/internal/model"
)

// Config holds chart rendering options.
type Config struct {
	Title    string
	Subtitle string
	Width    string
	Height   string
	Theme    string
}

// DefaultConfig returns the default chart configuration.
func DefaultConfig() Config {
	return Config{
		Width:  "1000px",
		Height: "600px",
		Theme:  "light",
	}
}

// RenderWinRates writes a bar chart of the grouped win rates to an HTML
// file. Two series share the group axis: win percentage and game count, so
// thin samples are visible next to their rates.
func RenderWinRates(rows []model.WinRateRow, config Config, outputPath string) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to chart")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 45},
		}),
	)

	labels := make([]string, len(rows))
	rates := make([]opts.BarData, len(rows))
	counts := make([]opts.BarData, len(rows))
	for i, r := range rows {
		labels[i] = r.GroupKey
		rates[i] = opts.BarData{Value: r.WinMean * 100}
		counts[i] = opts.BarData{Value: r.GameCount}
	}

	bar.SetXAxis(labels).
		AddSeries("Win %", rates).
		AddSeries("Games", counts).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// OpenInBrowser opens the given file in the default web browser.
func OpenInBrowser(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve chart path: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", absPath)
	default:
		cmd = exec.Command("xdg-open", absPath)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
