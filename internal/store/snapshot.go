// Package store holds the current immutable snapshot of match records.
package store

import (
	"time"

	"github.com/pable/go-match-analytics/internal/model"
)

// Snapshot is one consistent set of the four collections. It is never
// modified after publication; accessors hand out copies.
type Snapshot struct {
	ID          string
	LoadedAt    time.Time
	Fingerprint string

	players []model.PlayerStat
	teams   []model.TeamStat
	events  []model.Event
	matches []model.MatchSummary
}

var emptySnapshot = &Snapshot{}

// Loaded reports whether the snapshot came from a Load call.
func (s *Snapshot) Loaded() bool { return !s.LoadedAt.IsZero() }

// Players returns a copy of the player collection.
func (s *Snapshot) Players() []model.PlayerStat { return cloneSlice(s.players) }

// Teams returns a copy of the team collection. Each row's Fields map is
// copied as well.
func (s *Snapshot) Teams() []model.TeamStat { return copyTeams(s.teams) }

// Events returns a copy of the event collection.
func (s *Snapshot) Events() []model.Event { return copyEvents(s.events) }

// Matches returns a copy of the match summaries.
func (s *Snapshot) Matches() []model.MatchSummary { return copyMatches(s.matches) }

// Counts returns the collection sizes.
func (s *Snapshot) Counts() (players, teams, events, matches int) {
	return len(s.players), len(s.teams), len(s.events), len(s.matches)
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneFields(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyTeams(in []model.TeamStat) []model.TeamStat {
	out := cloneSlice(in)
	for i := range out {
		out[i].Fields = cloneFields(out[i].Fields)
	}
	return out
}

func copyEvents(in []model.Event) []model.Event {
	out := cloneSlice(in)
	for i := range out {
		if out[i].Second != nil {
			sec := *out[i].Second
			out[i].Second = &sec
		}
	}
	return out
}

func copyMatches(in []model.MatchSummary) []model.MatchSummary {
	out := cloneSlice(in)
	for i := range out {
		out[i].Teams = cloneSlice(out[i].Teams)
	}
	return out
}
