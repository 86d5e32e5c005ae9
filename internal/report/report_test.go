package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/furyhawk/barstats/internal/model"
	"github.com/furyhawk/barstats/internal/predictor"
)

func TestPrintTeammateTablesShowsBothViews(t *testing.T) {
	rows := []model.TeammateRow{
		{Name: "best_mate", UserID: 1, WinMean: 0.9, GameCount: 10},
		{Name: "mid_mate", UserID: 2, WinMean: 0.5, GameCount: 10},
		{Name: "worst_mate", UserID: 3, WinMean: 0.1, GameCount: 10},
	}

	var buf bytes.Buffer
	PrintTeammateTables(&buf, rows, 0)
	out := buf.String()

	if !strings.Contains(out, "Teammates (best first):") {
		t.Errorf("best view missing:\n%s", out)
	}
	if !strings.Contains(out, "Teammates (worst first):") {
		t.Errorf("worst view missing:\n%s", out)
	}
	if got := strings.Count(out, "worst_mate"); got != 2 {
		t.Errorf("top=0 must print every row in both views, saw worst_mate %d times", got)
	}
}

func TestPrintTeammateTablesTruncation(t *testing.T) {
	rows := []model.TeammateRow{
		{Name: "best_mate", UserID: 1, WinMean: 0.9, GameCount: 10},
		{Name: "mid_mate", UserID: 2, WinMean: 0.5, GameCount: 10},
		{Name: "worst_mate", UserID: 3, WinMean: 0.1, GameCount: 10},
	}

	var buf bytes.Buffer
	PrintTeammateTables(&buf, rows, 1)
	out := buf.String()

	if !strings.Contains(out, "best_mate") || !strings.Contains(out, "worst_mate") {
		t.Errorf("each view must keep its own top row:\n%s", out)
	}
	if strings.Contains(out, "mid_mate") {
		t.Errorf("top=1 must drop middle rows from both views:\n%s", out)
	}
}

func TestPrintBattleReportColumns(t *testing.T) {
	lobby := &predictor.Lobby{
		Title:       "All Welcome",
		MapFileName: "supreme_isthmus",
	}
	stats := []model.PlayerMapStat{
		{
			BattleRosterEntry: model.BattleRosterEntry{TeamID: 0, Username: "alice", SkillRating: 30, GameStatus: "Playing"},
			MapKey:            "supreme_isthmus",
			WinMean:           0.75,
			GameCount:         4,
		},
		{
			BattleRosterEntry: model.BattleRosterEntry{TeamID: 1, Username: "carol", SkillRating: 22, GameStatus: "Playing"},
			MapKey:            "supreme_isthmus",
			WinMean:           0.5,
			GameCount:         0,
		},
	}
	team1 := model.TeamPrediction{WinProbability: 1, TotalSkill: 30, TotalGames: 4}
	team2 := model.TeamPrediction{WinProbability: 0, TotalSkill: 22, TotalGames: 0}

	var buf bytes.Buffer
	PrintBattleReport(&buf, lobby, stats, team1, team2)
	out := buf.String()

	for _, col := range []string{"teamId", "username", "skill", "gameStatus", "Map.fileName", "mean", "count"} {
		if !strings.Contains(out, col) {
			t.Errorf("roster table missing column %q:\n%s", col, out)
		}
	}
	if !strings.Contains(out, "0.500") {
		t.Errorf("a zero-history player must render the 0.5 neutral prior:\n%s", out)
	}
	if !strings.Contains(out, "0.750") {
		t.Errorf("recorded win rates must render with three decimals:\n%s", out)
	}
}
