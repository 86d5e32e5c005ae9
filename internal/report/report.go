// Package report renders the aggregation results as console tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/furyhawk/barstats/internal/aggregator"
	"github.com/furyhawk/barstats/internal/model"
	"github.com/furyhawk/barstats/internal/predictor"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignCenter},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
	}))
}

// PrintSummary prints the one-line overview above the tables: overall win
// rate and total counted games for the player.
func PrintSummary(w io.Writer, name string, preset model.Preset, records []model.MatchRecord, userID int) {
	wins, games := 0, 0
	for _, r := range records {
		if r.UserID != userID {
			continue
		}
		games++
		if r.Won {
			wins++
		}
	}
	rate := 0.0
	if games > 0 {
		rate = float64(wins) / float64(games) * 100
	}
	fmt.Fprintf(w, "\nPlayer: %s  |  Preset: %s  |  Games: %d  |  Win rate: %.1f%%\n\n",
		name, preset, games, rate)
}

// PrintWinRateTable prints one grouped win-rate table. keyHeader names the
// group column ("Map.fileName", "faction"); rows arrive pre-sorted.
func PrintWinRateTable(w io.Writer, keyHeader string, rows []model.WinRateRow) {
	table := newTable(w)
	table.Header(keyHeader, "mean", "count")
	for _, r := range rows {
		table.Append(
			r.GroupKey,
			fmt.Sprintf("%.3f", r.WinMean),
			strconv.Itoa(r.GameCount),
		)
	}
	table.Render()
}

// PrintTeammateTable prints the shared-game win rates, best teammates first.
func PrintTeammateTable(w io.Writer, rows []model.TeammateRow) {
	table := newTable(w)
	table.Header("name", "mean", "count")
	for _, r := range rows {
		table.Append(
			r.Name,
			fmt.Sprintf("%.3f", r.WinMean),
			strconv.Itoa(r.GameCount),
		)
	}
	table.Render()
}

// PrintTeammateTables prints the two teammate views over the same rows:
// best first, then worst first. A positive top truncates each view to that
// many rows; zero or negative prints everything.
func PrintTeammateTables(w io.Writer, rows []model.TeammateRow, top int) {
	best := rows
	worst := aggregator.Worst(rows)
	if top > 0 {
		if len(best) > top {
			best = best[:top]
		}
		if len(worst) > top {
			worst = worst[:top]
		}
	}
	fmt.Fprintln(w, "\nTeammates (best first):")
	PrintTeammateTable(w, best)
	fmt.Fprintln(w, "\nTeammates (worst first):")
	PrintTeammateTable(w, worst)
}

// PrintBattleReport prints the live-lobby roster with each player's win
// rate on the lobby's map, followed by the two team predictions.
func PrintBattleReport(w io.Writer, lobby *predictor.Lobby, stats []model.PlayerMapStat, team1, team2 model.TeamPrediction) {
	fmt.Fprintf(w, "\nBattle: %s  |  Map: %s  |  Players: %d\n\n",
		lobby.Title, lobby.MapFileName, len(stats))

	table := newTable(w)
	table.Header("teamId", "username", "skill", "gameStatus", "Map.fileName", "mean", "count")
	for _, s := range stats {
		table.Append(
			strconv.Itoa(s.TeamID),
			s.Username,
			fmt.Sprintf("%.1f", s.SkillRating),
			s.GameStatus,
			s.MapKey,
			fmt.Sprintf("%.3f", s.WinMean),
			strconv.Itoa(s.GameCount),
		)
	}
	table.Render()

	fmt.Fprintln(w)
	printPrediction(w, "Team 1", team1)
	printPrediction(w, "Team 2", team2)
	fmt.Fprintf(w, "Delta: %+.1f%%\n", (team1.WinProbability-team2.WinProbability)*100)
}

func printPrediction(w io.Writer, label string, p model.TeamPrediction) {
	fmt.Fprintf(w, "%s: win %.1f%%  |  skill %.1f  |  games %d\n",
		label, p.WinProbability*100, p.TotalSkill, p.TotalGames)
}
