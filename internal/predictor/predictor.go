// Package predictor merges a live lobby roster with each player's
// historical win rate on the lobby's map and rolls the result up into two
// team predictions.
package predictor

import (
	"context"
	"fmt"
	"sort"

	"github.com/furyhawk/barstats/internal/aggregator"
	"github.com/furyhawk/barstats/internal/bar"
	"github.com/furyhawk/barstats/internal/model"
)

// API is the slice of the replay client the predictor needs.
type API interface {
	Battles(ctx context.Context) ([]bar.Battle, error)
}

// HistoryFunc returns the quick (list-only) match records for a username.
type HistoryFunc func(ctx context.Context, username string) ([]model.MatchRecord, error)

// Lobby is the most popular open battle: its title, map and player roster.
type Lobby struct {
	Title       string
	MapFileName string
	Roster      []model.BattleRosterEntry
}

// TopBattle fetches the battle listing and extracts the first (most
// popular) lobby. Occupants without a player slot (no team id) are
// spectators and are left out. The roster comes back sorted by team id,
// which is also the side-assignment order.
func TopBattle(ctx context.Context, api API) (*Lobby, error) {
	battles, err := api.Battles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list battles: %w", err)
	}
	if len(battles) == 0 {
		return nil, fmt.Errorf("no open battles")
	}
	top := battles[0]

	lobby := &Lobby{
		Title:       top.Title,
		MapFileName: top.MapFileName,
	}
	for _, p := range top.Players {
		if p.TeamID == nil || p.GameStatus == "" {
			continue
		}
		lobby.Roster = append(lobby.Roster, model.BattleRosterEntry{
			TeamID:      *p.TeamID,
			UserID:      p.UserID,
			Username:    p.Username,
			SkillRating: model.ParseSkill(p.Skill),
			GameStatus:  p.GameStatus,
		})
	}
	sort.SliceStable(lobby.Roster, func(i, j int) bool {
		return lobby.Roster[i].TeamID < lobby.Roster[j].TeamID
	})
	return lobby, nil
}

// PlayerStats looks up each roster player's win rate on the lobby's map.
// A player with no history on that exact map, or whose history cannot be
// fetched, gets the neutral prior (mean 0.5, count 0) rather than
// aborting the whole prediction.
func PlayerStats(ctx context.Context, lobby *Lobby, history HistoryFunc) []model.PlayerMapStat {
	stats := make([]model.PlayerMapStat, 0, len(lobby.Roster))
	for _, entry := range lobby.Roster {
		stat := model.PlayerMapStat{
			BattleRosterEntry: entry,
			MapKey:            lobby.MapFileName,
			WinMean:           0.5,
			GameCount:         0,
		}
		if records, err := history(ctx, entry.Username); err == nil {
			rows := aggregator.QuickWinRateByMap(records, 1)
			if row, ok := aggregator.LookupMap(rows, lobby.MapFileName); ok {
				stat.WinMean = row.WinMean
				stat.GameCount = row.GameCount
			}
		}
		stats = append(stats, stat)
	}
	return stats
}

// Predict splits the team-ordered stats into two halves and computes each
// side's prediction. Win probability weights players by their game count:
// each player contributes mean×count implied wins, each side's probability
// is its implied-win share of the grand total. The two probabilities sum
// to 1; when neither side has any recorded games both sides get 0.5.
func Predict(stats []model.PlayerMapStat) (team1, team2 model.TeamPrediction) {
	half := len(stats) / 2
	team1 = sideTotals(stats[:half])
	team2 = sideTotals(stats[half:])

	wins1 := impliedWins(stats[:half])
	wins2 := impliedWins(stats[half:])
	total := wins1 + wins2
	if total == 0 {
		team1.WinProbability = 0.5
		team2.WinProbability = 0.5
		return team1, team2
	}
	team1.WinProbability = wins1 / total
	team2.WinProbability = wins2 / total
	return team1, team2
}

func sideTotals(side []model.PlayerMapStat) model.TeamPrediction {
	var p model.TeamPrediction
	for _, s := range side {
		p.TotalSkill += s.SkillRating
		p.TotalGames += s.GameCount
	}
	return p
}

func impliedWins(side []model.PlayerMapStat) float64 {
	var wins float64
	for _, s := range side {
		wins += s.WinMean * float64(s.GameCount)
	}
	return wins
}
