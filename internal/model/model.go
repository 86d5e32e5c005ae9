package model

import (
	"fmt"
	"strconv"
	"time"
)

// Preset selects which competition format a query covers.
type Preset int

const (
	PresetDuel Preset = iota
	PresetTeam
	PresetFFA
	PresetAll
)

func (p Preset) String() string {
	switch p {
	case PresetDuel:
		return "duel"
	case PresetTeam:
		return "team"
	case PresetFFA:
		return "ffa"
	case PresetAll:
		return "all"
	default:
		return "?"
	}
}

// Values returns the format filters the preset expands to in a query.
// "all" is a multi-valued filter, not a server-side concept.
func (p Preset) Values() []string {
	if p == PresetAll {
		return []string{"duel", "ffa", "team"}
	}
	return []string{p.String()}
}

// ParsePreset parses a preset name as used on the command line.
func ParsePreset(s string) (Preset, error) {
	switch s {
	case "duel":
		return PresetDuel, nil
	case "team":
		return PresetTeam, nil
	case "ffa":
		return PresetFFA, nil
	case "all":
		return PresetAll, nil
	default:
		return 0, fmt.Errorf("unknown preset %q (want duel, team, ffa or all)", s)
	}
}

// MatchRecord is the normalized unit: one row per (match, ally team, player).
// Every row of a match shares MatchID, MapKey, DurationMs and StartTime; every
// row of an ally team shares Won.
type MatchRecord struct {
	MatchID       string
	TeamID        int
	AllyTeamID    int
	UserID        int
	PlayerName    string
	Faction       string
	Rank          int
	SkillRating   float64
	StartPos      Position
	Won           bool
	MapKey        string
	MapScriptName string
	DurationMs    int64
	StartTime     time.Time
}

// Position is a start position on the map.
type Position struct {
	X, Y, Z float64
}

// WinRateRow is one group of a win-rate aggregation.
type WinRateRow struct {
	GroupKey  string
	WinMean   float64
	GameCount int
}

// TeammateRow is a WinRateRow keyed by a teammate's name, with their id kept
// so callers can exclude or resolve them.
type TeammateRow struct {
	Name      string
	UserID    int
	WinMean   float64
	GameCount int
}

// BattleRosterEntry is one player of the live lobby under prediction.
type BattleRosterEntry struct {
	TeamID      int
	UserID      int
	Username    string
	SkillRating float64
	GameStatus  string
}

// PlayerMapStat merges a roster entry with the player's historical win rate
// on the lobby's map. A player with no history carries the neutral prior
// (WinMean 0.5, GameCount 0).
type PlayerMapStat struct {
	BattleRosterEntry
	MapKey    string
	WinMean   float64
	GameCount int
}

// TeamPrediction aggregates one lobby side.
type TeamPrediction struct {
	WinProbability float64
	TotalSkill     float64
	TotalGames     int
}

// ParseSkill extracts the numeric skill rating from the API's decorated
// string form, e.g. "[16.66]" or "25.3 (±1.2)". It takes the first decimal
// number in the string; a nil, empty or numberless value parses to 0.0.
// Malformed input is absorbed here, never propagated.
func ParseSkill(raw *string) float64 {
	if raw == nil {
		return 0
	}
	s := *raw
	start := -1
	dot := false
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] >= '0' && s[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if i < len(s) && s[i] == '.' && start >= 0 && !dot {
			dot = true
			continue
		}
		if start >= 0 {
			token := s[start:i]
			if token[len(token)-1] == '.' {
				token = token[:len(token)-1]
			}
			if v, err := strconv.ParseFloat(token, 64); err == nil {
				return v
			}
		}
		start, dot = -1, false
	}
	return 0
}
