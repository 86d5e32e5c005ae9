// Package aggregator computes win-rate summaries over the normalized
// match table. Every function is pure: records in, sorted rows out, empty
// slice (never an error) when nothing qualifies.
//
// Minimum-sample thresholds are inclusive everywhere: a group with exactly
// minGames games is kept.
package aggregator

import (
	"sort"

	"github.com/furyhawk/barstats/internal/model"
)

type accum struct {
	wins  int
	games int
}

func (a accum) mean() float64 {
	if a.games == 0 {
		return 0
	}
	return float64(a.wins) / float64(a.games)
}

// groupRows turns a key→accum map into rows, dropping groups below minGames.
func groupRows(groups map[string]accum, minGames int) []model.WinRateRow {
	rows := make([]model.WinRateRow, 0, len(groups))
	for key, a := range groups {
		if a.games < minGames {
			continue
		}
		rows = append(rows, model.WinRateRow{
			GroupKey:  key,
			WinMean:   a.mean(),
			GameCount: a.games,
		})
	}
	return rows
}

// sortRows orders rows ascending by (mean, count), with the group key as a
// final tie-break so equal groups always come out in the same order.
func sortRows(rows []model.WinRateRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WinMean != rows[j].WinMean {
			return rows[i].WinMean < rows[j].WinMean
		}
		if rows[i].GameCount != rows[j].GameCount {
			return rows[i].GameCount < rows[j].GameCount
		}
		return rows[i].GroupKey < rows[j].GroupKey
	})
}

// WinRateByMap computes the user's win rate per map key, keeping maps with
// at least minGames games, sorted ascending by (mean, count). An unresolved
// user (id absent from records) yields an empty result.
func WinRateByMap(records []model.MatchRecord, userID, minGames int) []model.WinRateRow {
	groups := make(map[string]accum)
	for _, r := range records {
		if r.UserID != userID {
			continue
		}
		a := groups[r.MapKey]
		a.games++
		if r.Won {
			a.wins++
		}
		groups[r.MapKey] = a
	}
	rows := groupRows(groups, minGames)
	sortRows(rows)
	return rows
}

// WinRateByFaction computes the user's win rate per faction. No minimum
// sample filter; rows come out keyed alphabetically by faction.
func WinRateByFaction(records []model.MatchRecord, userID int) []model.WinRateRow {
	groups := make(map[string]accum)
	for _, r := range records {
		if r.UserID != userID {
			continue
		}
		a := groups[r.Faction]
		a.games++
		if r.Won {
			a.wins++
		}
		groups[r.Faction] = a
	}
	rows := groupRows(groups, 0)
	sort.Slice(rows, func(i, j int) bool { return rows[i].GroupKey < rows[j].GroupKey })
	return rows
}

// Teammates computes win rates for everyone who shared an ally team with the
// user, in "best" order (descending by mean, then count). Pass 1 collects
// every ally team the user belonged to; pass 2 aggregates the other players
// of those teams. The user's own rows are excluded, as are teammates below
// minGames shared games.
func Teammates(records []model.MatchRecord, userID, minGames int) []model.TeammateRow {
	userTeams := make(map[int]struct{})
	for _, r := range records {
		if r.UserID == userID {
			userTeams[r.AllyTeamID] = struct{}{}
		}
	}
	if len(userTeams) == 0 {
		return nil
	}

	type mateKey struct {
		name string
		id   int
	}
	groups := make(map[mateKey]accum)
	for _, r := range records {
		if r.UserID == userID {
			continue
		}
		if _, ok := userTeams[r.AllyTeamID]; !ok {
			continue
		}
		k := mateKey{r.PlayerName, r.UserID}
		a := groups[k]
		a.games++
		if r.Won {
			a.wins++
		}
		groups[k] = a
	}

	rows := make([]model.TeammateRow, 0, len(groups))
	for k, a := range groups {
		if a.games < minGames {
			continue
		}
		rows = append(rows, model.TeammateRow{
			Name:      k.name,
			UserID:    k.id,
			WinMean:   a.mean(),
			GameCount: a.games,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WinMean != rows[j].WinMean {
			return rows[i].WinMean > rows[j].WinMean
		}
		if rows[i].GameCount != rows[j].GameCount {
			return rows[i].GameCount > rows[j].GameCount
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// Worst re-sorts teammate rows ascending by (mean, count): the same rows
// Teammates returns, in "worst first" order.
func Worst(rows []model.TeammateRow) []model.TeammateRow {
	out := make([]model.TeammateRow, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinMean != out[j].WinMean {
			return out[i].WinMean < out[j].WinMean
		}
		if out[i].GameCount != out[j].GameCount {
			return out[i].GameCount < out[j].GameCount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// QuickWinRateByMap computes win rate per map over an already user-scoped
// record set (the quick path fetches by name, so no id filter applies).
// Empty input yields an empty result.
func QuickWinRateByMap(records []model.MatchRecord, minGames int) []model.WinRateRow {
	groups := make(map[string]accum)
	for _, r := range records {
		a := groups[r.MapKey]
		a.games++
		if r.Won {
			a.wins++
		}
		groups[r.MapKey] = a
	}
	rows := groupRows(groups, minGames)
	sortRows(rows)
	return rows
}

// LookupMap finds the row for an exact map key.
func LookupMap(rows []model.WinRateRow, mapKey string) (model.WinRateRow, bool) {
	for _, row := range rows {
		if row.GroupKey == mapKey {
			return row, true
		}
	}
	return model.WinRateRow{}, false
}
