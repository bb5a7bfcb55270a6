package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pable/go-match-analytics/internal/store"
)

var mirrorTables = []string{"snapshot", "players", "teams", "events", "matches"}

// ReplaceSnapshot clears the mirror and writes every collection of snap in
// one transaction.
func (db *DB) ReplaceSnapshot(ctx context.Context, snap *store.Snapshot) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range mirrorTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if snap.Loaded() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot(id, loaded_at, fingerprint) VALUES (?, ?, ?)`,
			snap.ID, snap.LoadedAt.UTC().Format(time.RFC3339Nano), snap.Fingerprint,
		); err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
	}

	for _, step := range []func(context.Context, *sql.Tx, *store.Snapshot) error{
		insertPlayers, insertTeams, insertEvents, insertMatches,
	} {
		if err := step(ctx, tx, snap); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertPlayers(ctx context.Context, tx *sql.Tx, snap *store.Snapshot) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO players(
			match_id, player, team, position, position_category,
			total_touches, passes_attempted, passes_successful, pass_accuracy,
			duels_attempted, duels_won, duel_success_rate,
			shots_attempted, shots_on_target, shot_accuracy, goals,
			recoveries, defensive_actions, crosses_attempted, crosses_successful
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range snap.Players() {
		_, err = stmt.ExecContext(ctx,
			p.MatchID, p.Player, p.Team, p.Position, p.PositionCategory().String(),
			p.TotalTouches, p.PassesAttempted, p.PassesSuccessful, p.PassAccuracy,
			p.DuelsAttempted, p.DuelsWon, p.DuelSuccessRate,
			p.ShotsAttempted, p.ShotsOnTarget, p.ShotAccuracy, p.Goals,
			p.Recoveries, p.DefensiveActions, p.CrossesAttempted, p.CrossesSuccessful,
		)
		if err != nil {
			return fmt.Errorf("insert player %s: %w", p.Player, err)
		}
	}
	return nil
}

func insertTeams(ctx context.Context, tx *sql.Tx, snap *store.Snapshot) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO teams(match_id, team, pass_accuracy, conversion_rate, defensive_duels_won, fields)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range snap.Teams() {
		fields := []byte("{}")
		if len(t.Fields) > 0 {
			if fields, err = json.Marshal(t.Fields); err != nil {
				return fmt.Errorf("encode team fields for %s: %w", t.Team, err)
			}
		}
		_, err = stmt.ExecContext(ctx,
			t.MatchID, t.Team, t.PassAccuracy, t.ConversionRate, t.DefensiveDuelsWon, string(fields),
		)
		if err != nil {
			return fmt.Errorf("insert team %s: %w", t.Team, err)
		}
	}
	return nil
}

func insertEvents(ctx context.Context, tx *sql.Tx, snap *store.Snapshot) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events(
			seq, match_id, minute, second, player, team,
			event_type, event_category, outcome, x, y, zone, is_successful
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range snap.Events() {
		var second, x, y any
		if e.Second != nil {
			second = *e.Second
		}
		if e.HasCoords {
			x, y = e.X, e.Y
		}
		_, err = stmt.ExecContext(ctx,
			i, e.MatchID, e.Minute, second, e.Player, e.Team,
			e.EventType, e.EventCategory, e.Outcome, x, y, e.Zone, boolInt(e.IsSuccessful),
		)
		if err != nil {
			return fmt.Errorf("insert event %d: %w", i, err)
		}
	}
	return nil
}

func insertMatches(ctx context.Context, tx *sql.Tx, snap *store.Snapshot) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches(match_id, duration, total_events, player_count, teams)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range snap.Matches() {
		_, err = stmt.ExecContext(ctx,
			m.MatchID, m.Duration, m.TotalEvents, m.PlayerCount, strings.Join(m.Teams, ","),
		)
		if err != nil {
			return fmt.Errorf("insert match %d: %w", m.MatchID, err)
		}
	}
	return nil
}

// QueryRaw runs an arbitrary query and returns column names and every row
// rendered as text. NULL renders as "NULL".
func (db *DB) QueryRaw(ctx context.Context, query string) ([]string, [][]string, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			rec[i] = formatValue(v)
		}
		out = append(out, rec)
	}
	return cols, out, rows.Err()
}

// Count returns the row count of a mirror table.
func (db *DB) Count(ctx context.Context, table string) (int, error) {
	known := false
	for _, t := range mirrorTables {
		if t == table {
			known = true
			break
		}
	}
	if !known {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+table).Scan(&n)
	return n, err
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return fmt.Sprintf("%g", x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
