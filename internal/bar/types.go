package bar

// CachedUser is one entry of the full name↔id roster listing.
type CachedUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// MapInfo identifies the map a match was played on. FileName is null for
// aborted matches that never loaded a map.
type MapInfo struct {
	FileName   *string `json:"fileName"`
	ScriptName string  `json:"scriptName"`
}

// Position is a player start position in map coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ReplayPlayer is one player inside an ally team of a replay.
// Skill is a decorated string (e.g. "[16.66]") and may be null.
type ReplayPlayer struct {
	UserID     int      `json:"userId"`
	TeamID     int      `json:"teamId"`
	AllyTeamID int      `json:"allyTeamId"`
	Name       string   `json:"name"`
	Faction    string   `json:"faction"`
	Rank       int      `json:"rank"`
	Skill      *string  `json:"skill"`
	StartPos   Position `json:"startPos"`
}

// AllyTeam is one side of a match: its players win or lose together.
type AllyTeam struct {
	ID          int            `json:"id"`
	WinningTeam bool           `json:"winningTeam"`
	Players     []ReplayPlayer `json:"Players"`
}

// ReplayListItem is one entry of the paged match listing. The listing
// carries the same nested shape as the detail, minus per-player fields
// beyond the name.
type ReplayListItem struct {
	ID         string     `json:"id"`
	StartTime  string     `json:"startTime"`
	DurationMs int64      `json:"durationMs"`
	Map        MapInfo    `json:"Map"`
	AllyTeams  []AllyTeam `json:"AllyTeams"`
}

// ReplayPage is the match-list response envelope.
type ReplayPage struct {
	TotalResults int              `json:"totalResults"`
	Page         int              `json:"page"`
	Limit        int              `json:"limit"`
	Data         []ReplayListItem `json:"data"`
}

// ReplayDetail is the full per-match record with the complete nested
// team/player structure.
type ReplayDetail struct {
	ID         string     `json:"id"`
	StartTime  string     `json:"startTime"`
	DurationMs int64      `json:"durationMs"`
	Map        MapInfo    `json:"Map"`
	AllyTeams  []AllyTeam `json:"AllyTeams"`
}

// BattlePlayer is one occupant of a live lobby. TeamID is null for
// occupants without a player slot.
type BattlePlayer struct {
	UserID     int     `json:"userId"`
	Username   string  `json:"username"`
	TeamID     *int    `json:"teamId"`
	GameStatus string  `json:"gameStatus"`
	Skill      *string `json:"skill"`
}

// Battle is one open lobby from the live battle listing, most popular first.
type Battle struct {
	Title       string         `json:"title"`
	MapFileName string         `json:"mapFileName"`
	Players     []BattlePlayer `json:"players"`
}
