package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pable/go-match-analytics/internal/model"
)

// ReadPlayers parses player_stats.csv.
func ReadPlayers(r io.Reader) ([]model.PlayerStat, error) {
	_, rows, err := readRows(r)
	if err != nil {
		return nil, fmt.Errorf("read players: %w", err)
	}
	out := make([]model.PlayerStat, 0, len(rows))
	for _, rw := range rows {
		out = append(out, model.PlayerStat{
			MatchID:           rw.integer("match_id"),
			Player:            rw.str("player", "player_name"),
			Team:              rw.str("team"),
			Position:          rw.str("position"),
			TotalTouches:      rw.integer("total_touches", "touches"),
			PassesAttempted:   rw.integer("passes_attempted"),
			PassesSuccessful:  rw.integer("passes_successful"),
			PassAccuracy:      rw.num("pass_accuracy"),
			DuelsAttempted:    rw.integer("duels_attempted", "duels"),
			DuelsWon:          rw.integer("duels_won"),
			DuelSuccessRate:   rw.num("duel_success_rate"),
			ShotsAttempted:    rw.integer("shots_attempted", "shots"),
			ShotsOnTarget:     rw.integer("shots_on_target"),
			ShotAccuracy:      rw.num("shot_accuracy"),
			Goals:             rw.integer("goals"),
			Recoveries:        rw.integer("recoveries"),
			DefensiveActions:  rw.integer("defensive_actions"),
			CrossesAttempted:  rw.integer("crosses_attempted"),
			CrossesSuccessful: rw.integer("crosses_successful"),
		})
	}
	return out, nil
}

// ReadTeams parses team_stats.csv. Every column is kept in Fields with
// numeric cells as float64 and empty cells as nil.
func ReadTeams(r io.Reader) ([]model.TeamStat, error) {
	header, rows, err := readRows(r)
	if err != nil {
		return nil, fmt.Errorf("read teams: %w", err)
	}
	out := make([]model.TeamStat, 0, len(rows))
	for _, rw := range rows {
		fields := make(map[string]any, len(header))
		for _, col := range header {
			fields[col] = coerce(rw[col])
		}
		out = append(out, model.TeamStat{
			MatchID:           rw.integer("match_id"),
			Team:              rw.str("team"),
			PassAccuracy:      rw.num("pass_accuracy"),
			ConversionRate:    rw.num("conversion_rate"),
			DefensiveDuelsWon: rw.num("defensive_duels_won"),
			Fields:            fields,
		})
	}
	return out, nil
}

// ReadEvents parses events_clean.csv. Coordinates count only when both x
// and y are numeric; second is optional.
func ReadEvents(r io.Reader) ([]model.Event, error) {
	_, rows, err := readRows(r)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	out := make([]model.Event, 0, len(rows))
	for _, rw := range rows {
		ev := model.Event{
			MatchID:       rw.integer("match_id"),
			Minute:        rw.integer("minute"),
			Player:        rw.str("player"),
			Team:          rw.str("team"),
			EventType:     rw.str("event_type"),
			EventCategory: rw.str("event_category"),
			Outcome:       rw.str("outcome"),
			Zone:          rw.str("zone_3x3", "zone"),
			IsSuccessful:  rw.flag("is_successful"),
		}
		if sec, ok := rw.number("second"); ok {
			s := int(sec)
			ev.Second = &s
		}
		x, okX := rw.number("x")
		y, okY := rw.number("y")
		if okX && okY {
			ev.X, ev.Y, ev.HasCoords = x, y, true
		}
		out = append(out, ev)
	}
	return out, nil
}

// ReadSummaries parses match_summary.json, which holds either a single
// summary object or an array of them.
func ReadSummaries(r io.Reader) ([]model.MatchSummary, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read match summary: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	if raw[0] == '[' {
		var list []model.MatchSummary
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decode match summary list: %w", err)
		}
		return list, nil
	}
	var one model.MatchSummary
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, fmt.Errorf("decode match summary: %w", err)
	}
	return []model.MatchSummary{one}, nil
}
