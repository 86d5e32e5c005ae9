package aggregator

import (
	"math"
	"testing"

	"github.com/furyhawk/barstats/internal/model"
)

const aliceID = 101

func matchOn(mapKey string, won bool, n int) []model.MatchRecord {
	records := make([]model.MatchRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, model.MatchRecord{
			MatchID:    mapKey + "-match",
			UserID:     aliceID,
			PlayerName: "alice",
			MapKey:     mapKey,
			Won:        won,
		})
	}
	return records
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWinRateByMapThreshold(t *testing.T) {
	records := append(matchOn("supreme_isthmus", true, 4), matchOn("supreme_isthmus", false, 2)...)
	records = append(records, matchOn("glitters", true, 3)...)

	rows := WinRateByMap(records, aliceID, 5)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row above threshold, got %d", len(rows))
	}
	row := rows[0]
	if row.GroupKey != "supreme_isthmus" {
		t.Errorf("unexpected map key %q", row.GroupKey)
	}
	if row.GameCount != 6 {
		t.Errorf("expected 6 games, got %d", row.GameCount)
	}
	if !almostEqual(row.WinMean, 4.0/6.0) {
		t.Errorf("expected mean %.4f, got %.4f", 4.0/6.0, row.WinMean)
	}
}

func TestWinRateByMapThresholdInclusive(t *testing.T) {
	records := append(matchOn("glitters", true, 3), matchOn("glitters", false, 2)...)

	if rows := WinRateByMap(records, aliceID, 5); len(rows) != 1 {
		t.Errorf("a group with exactly minGames games must be kept, got %d rows", len(rows))
	}
	if rows := WinRateByMap(records, aliceID, 6); len(rows) != 0 {
		t.Errorf("a group below minGames must be dropped, got %d rows", len(rows))
	}
}

func TestWinRateByMapSortOrder(t *testing.T) {
	var records []model.MatchRecord
	records = append(records, matchOn("a_low", false, 4)...)
	records = append(records, matchOn("b_mid", true, 2)...)
	records = append(records, matchOn("b_mid", false, 2)...)
	records = append(records, matchOn("c_high", true, 4)...)

	rows := WinRateByMap(records, aliceID, 1)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].WinMean < rows[i-1].WinMean {
			t.Errorf("rows not sorted by ascending mean at index %d", i)
		}
	}
	if rows[0].GroupKey != "a_low" || rows[2].GroupKey != "c_high" {
		t.Errorf("unexpected order: %q .. %q", rows[0].GroupKey, rows[2].GroupKey)
	}
}

func TestWinRateByMapIgnoresOtherPlayers(t *testing.T) {
	records := matchOn("glitters", true, 3)
	records = append(records, model.MatchRecord{
		MatchID: "m9", UserID: 999, PlayerName: "mallory",
		MapKey: "glitters", Won: false,
	})

	rows := WinRateByMap(records, aliceID, 1)
	if len(rows) != 1 || rows[0].GameCount != 3 {
		t.Fatalf("other players' rows leaked into the aggregate: %+v", rows)
	}
	if !almostEqual(rows[0].WinMean, 1.0) {
		t.Errorf("expected mean 1.0, got %.4f", rows[0].WinMean)
	}
}

func TestWinRateByFaction(t *testing.T) {
	records := []model.MatchRecord{
		{MatchID: "m1", UserID: aliceID, Faction: "Armada", Won: true},
		{MatchID: "m2", UserID: aliceID, Faction: "Armada", Won: false},
		{MatchID: "m3", UserID: aliceID, Faction: "Cortex", Won: true},
	}

	rows := WinRateByFaction(records, aliceID)
	if len(rows) != 2 {
		t.Fatalf("expected 2 factions, got %d", len(rows))
	}
	if rows[0].GroupKey != "Armada" || rows[1].GroupKey != "Cortex" {
		t.Errorf("expected faction key order, got %q then %q", rows[0].GroupKey, rows[1].GroupKey)
	}
	if !almostEqual(rows[0].WinMean, 0.5) || !almostEqual(rows[1].WinMean, 1.0) {
		t.Errorf("unexpected means: %.2f %.2f", rows[0].WinMean, rows[1].WinMean)
	}
}

func TestTeammatesExcludeSelf(t *testing.T) {
	records := []model.MatchRecord{
		{MatchID: "m1", UserID: aliceID, PlayerName: "alice", AllyTeamID: 1, Won: true},
		{MatchID: "m1", UserID: 202, PlayerName: "bob", AllyTeamID: 1, Won: true},
		{MatchID: "m1", UserID: 303, PlayerName: "eve", AllyTeamID: 2, Won: false},
		{MatchID: "m2", UserID: aliceID, PlayerName: "alice", AllyTeamID: 5, Won: false},
		{MatchID: "m2", UserID: 202, PlayerName: "bob", AllyTeamID: 5, Won: false},
	}

	rows := Teammates(records, aliceID, 1)
	if len(rows) != 1 {
		t.Fatalf("expected only bob, got %d rows", len(rows))
	}
	bob := rows[0]
	if bob.UserID != 202 || bob.Name != "bob" {
		t.Errorf("unexpected teammate %+v", bob)
	}
	if bob.GameCount != 2 || !almostEqual(bob.WinMean, 0.5) {
		t.Errorf("expected 2 shared games at mean 0.5, got %d at %.2f", bob.GameCount, bob.WinMean)
	}
	for _, r := range rows {
		if r.UserID == aliceID {
			t.Errorf("player appears as their own teammate")
		}
	}
}

func TestTeammatesOpponentSameMatchExcluded(t *testing.T) {
	records := []model.MatchRecord{
		{MatchID: "m1", UserID: aliceID, PlayerName: "alice", AllyTeamID: 1, Won: true},
		{MatchID: "m1", UserID: 303, PlayerName: "eve", AllyTeamID: 2, Won: false},
	}
	if rows := Teammates(records, aliceID, 1); len(rows) != 0 {
		t.Errorf("opponents must not count as teammates, got %+v", rows)
	}
}

func TestWorst(t *testing.T) {
	rows := []model.TeammateRow{
		{Name: "good", WinMean: 0.9, GameCount: 10},
		{Name: "bad", WinMean: 0.1, GameCount: 10},
		{Name: "mid", WinMean: 0.5, GameCount: 10},
	}
	worst := Worst(rows)
	if worst[0].Name != "bad" || worst[2].Name != "good" {
		t.Errorf("unexpected worst-first order: %+v", worst)
	}
	if rows[0].Name != "good" {
		t.Errorf("Worst must not mutate its input")
	}
}

func TestQuickWinRateByMapEmptyInput(t *testing.T) {
	if rows := QuickWinRateByMap(nil, 1); len(rows) != 0 {
		t.Errorf("empty input must produce empty output, got %+v", rows)
	}
}

func TestLookupMap(t *testing.T) {
	rows := []model.WinRateRow{
		{GroupKey: "glitters", WinMean: 0.25, GameCount: 4},
	}
	if row, ok := LookupMap(rows, "glitters"); !ok || !almostEqual(row.WinMean, 0.25) {
		t.Errorf("expected hit on glitters, got ok=%v row=%+v", ok, row)
	}
	if _, ok := LookupMap(rows, "unknown_map"); ok {
		t.Errorf("expected miss on unknown map")
	}
}
