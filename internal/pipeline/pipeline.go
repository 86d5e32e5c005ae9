// Package pipeline turns the API's nested replay structures into the
// normalized row-per-player-per-match table the aggregations run on.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/furyhawk/barstats/internal/bar"
	"github.com/furyhawk/barstats/internal/model"
)

// API is the slice of the replay client the pipeline needs.
type API interface {
	CachedUsers(ctx context.Context) ([]bar.CachedUser, error)
	Replays(ctx context.Context, q bar.ReplayQuery) (*bar.ReplayPage, error)
	Replay(ctx context.Context, id string) (*bar.ReplayDetail, error)
}

// Progress is called once per match as its detail is fetched.
// done counts completed fetches, total is the number of listed matches.
type Progress func(done, total int, matchID string)

// Pipeline fetches and normalizes a user's match history.
type Pipeline struct {
	api API
}

// New returns a pipeline over the given API client.
func New(api API) *Pipeline {
	return &Pipeline{api: api}
}

// FetchUserMatches lists the user's matches for the preset (and optional
// season cutoff) and fetches the full detail of each. Matches whose map is
// null are aborted games and are dropped without a detail fetch; they still
// advance the progress counter so completion percentage stays honest.
// A user with no matches yields an empty slice, not an error.
func (p *Pipeline) FetchUserMatches(ctx context.Context, name string, preset model.Preset, season0 bool, progress Progress) ([]bar.ReplayDetail, error) {
	page, err := p.api.Replays(ctx, bar.ReplayQuery{
		Preset:  preset,
		Season0: season0,
		Players: name,
	})
	if err != nil {
		return nil, fmt.Errorf("list matches for %q: %w", name, err)
	}

	total := len(page.Data)
	details := make([]bar.ReplayDetail, 0, total)
	for i, item := range page.Data {
		if progress != nil {
			progress(i+1, total, item.ID)
		}
		if item.Map.FileName == nil {
			continue
		}
		detail, err := p.api.Replay(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("match detail %s: %w", item.ID, err)
		}
		details = append(details, *detail)
	}
	return details, nil
}

// Normalize flattens match details into one MatchRecord per
// (match, ally team, player). Each row is built fresh; nothing carries over
// between iterations. When qualifyTeamSize is set the map key is suffixed
// with the team size ("_2v2") so the same map at different sizes aggregates
// separately.
func Normalize(details []bar.ReplayDetail, qualifyTeamSize bool) []model.MatchRecord {
	var records []model.MatchRecord
	for _, d := range details {
		if d.Map.FileName == nil {
			continue
		}
		startTime := parseStartTime(d.StartTime)
		for _, team := range d.AllyTeams {
			mapKey := *d.Map.FileName
			if qualifyTeamSize {
				n := len(team.Players)
				mapKey = fmt.Sprintf("%s_%dv%d", mapKey, n, n)
			}
			for _, pl := range team.Players {
				records = append(records, model.MatchRecord{
					MatchID:       d.ID,
					TeamID:        pl.TeamID,
					AllyTeamID:    pl.AllyTeamID,
					UserID:        pl.UserID,
					PlayerName:    pl.Name,
					Faction:       pl.Faction,
					Rank:          pl.Rank,
					SkillRating:   model.ParseSkill(pl.Skill),
					StartPos:      model.Position{X: pl.StartPos.X, Y: pl.StartPos.Y, Z: pl.StartPos.Z},
					Won:           team.WinningTeam,
					MapKey:        mapKey,
					MapScriptName: d.Map.ScriptName,
					DurationMs:    d.DurationMs,
					StartTime:     startTime,
				})
			}
		}
	}
	return records
}

// QuickRecords flattens the match-list response itself into records for the
// named player only, with no per-match detail fetches. Only the fields the
// single-match live lookup needs are populated (id, name, outcome, map).
func (p *Pipeline) QuickRecords(ctx context.Context, name string, preset model.Preset, season0 bool) ([]model.MatchRecord, error) {
	page, err := p.api.Replays(ctx, bar.ReplayQuery{
		Preset:  preset,
		Season0: season0,
		Players: name,
	})
	if err != nil {
		return nil, fmt.Errorf("list matches for %q: %w", name, err)
	}

	var records []model.MatchRecord
	for _, item := range page.Data {
		if item.Map.FileName == nil {
			continue
		}
		for _, team := range item.AllyTeams {
			for _, pl := range team.Players {
				if pl.Name != name {
					continue
				}
				records = append(records, model.MatchRecord{
					MatchID:       item.ID,
					PlayerName:    pl.Name,
					Won:           team.WinningTeam,
					MapKey:        *item.Map.FileName,
					MapScriptName: item.Map.ScriptName,
					DurationMs:    item.DurationMs,
					StartTime:     parseStartTime(item.StartTime),
				})
			}
		}
	}
	return records, nil
}

// parseStartTime parses the source's ISO-like timestamp. A malformed value
// yields the zero time rather than an error.
func parseStartTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
