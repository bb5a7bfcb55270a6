package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pable/go-match-analytics/internal/model"
	"github.com/pable/go-match-analytics/internal/store"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func loadedSnapshot(t *testing.T, events []model.Event) *store.Snapshot {
	t.Helper()
	s := store.New(nil)
	s.Load(store.Sources{
		Players: func() ([]model.PlayerStat, error) {
			return []model.PlayerStat{
				{MatchID: 1, Player: "John Smith", Team: "Home", Position: "Left Back", Recoveries: 6},
				{MatchID: 1, Player: "Ana Lima", Team: "Away", Position: "GK"},
			}, nil
		},
		Teams: func() ([]model.TeamStat, error) {
			return []model.TeamStat{{MatchID: 1, Team: "Home", PassAccuracy: 84.2, Fields: map[string]any{"possession": 55.0}}}, nil
		},
		Events: func() ([]model.Event, error) { return events, nil },
		Matches: func() ([]model.MatchSummary, error) {
			return nil, errors.New("match_summary.json missing")
		},
		Fingerprint: "f00",
	})
	return s.Current()
}

func sec(v int) *int { return &v }

func TestReplaceSnapshot(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	snap := loadedSnapshot(t, []model.Event{
		{MatchID: 1, Minute: 3, Second: sec(12), Player: "John Smith", EventType: "Pass", EventCategory: "Pass", X: 40, Y: 20, HasCoords: true, Zone: "R1C2", IsSuccessful: true},
		{MatchID: 1, Minute: 9, Player: "Ana Lima", EventType: "Recovery", EventCategory: "Recovery"},
	})
	if err := db.ReplaceSnapshot(ctx, snap); err != nil {
		t.Fatalf("ReplaceSnapshot: %v", err)
	}

	for table, want := range map[string]int{"snapshot": 1, "players": 2, "teams": 1, "events": 2, "matches": 0} {
		n, err := db.Count(ctx, table)
		if err != nil {
			t.Fatalf("Count(%s): %v", table, err)
		}
		if n != want {
			t.Errorf("%s: got %d rows, want %d", table, n, want)
		}
	}

	cols, rows, err := db.QueryRaw(ctx, "SELECT player, position_category FROM players ORDER BY player")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || len(rows) != 2 {
		t.Fatalf("got cols=%v rows=%v", cols, rows)
	}
	if rows[0][0] != "Ana Lima" || rows[0][1] != "Goalkeeper" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1][1] != "Defender" {
		t.Errorf("row 1 position category = %q, want Defender", rows[1][1])
	}
}

func TestReplaceSnapshot_NullableColumns(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	snap := loadedSnapshot(t, []model.Event{
		{MatchID: 1, Minute: 9, Player: "Ana Lima", EventType: "Recovery"},
	})
	if err := db.ReplaceSnapshot(ctx, snap); err != nil {
		t.Fatalf("ReplaceSnapshot: %v", err)
	}

	_, rows, err := db.QueryRaw(ctx, "SELECT second, x, y FROM events")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	for i, v := range rows[0] {
		if v != "NULL" {
			t.Errorf("column %d = %q, want NULL", i, v)
		}
	}
}

func TestReplaceSnapshot_TeamFieldsAsJSON(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	if err := db.ReplaceSnapshot(ctx, loadedSnapshot(t, nil)); err != nil {
		t.Fatalf("ReplaceSnapshot: %v", err)
	}
	_, rows, err := db.QueryRaw(ctx, "SELECT fields FROM teams")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(rows[0][0]), &fields); err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	if fields["possession"] != 55.0 {
		t.Errorf("possession = %v, want 55", fields["possession"])
	}
}

func TestReplaceSnapshot_ClearsPreviousRows(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	first := loadedSnapshot(t, []model.Event{{MatchID: 1}, {MatchID: 1}, {MatchID: 1}})
	if err := db.ReplaceSnapshot(ctx, first); err != nil {
		t.Fatalf("ReplaceSnapshot: %v", err)
	}
	second := loadedSnapshot(t, []model.Event{{MatchID: 2}})
	if err := db.ReplaceSnapshot(ctx, second); err != nil {
		t.Fatalf("ReplaceSnapshot: %v", err)
	}

	n, err := db.Count(ctx, "events")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("events = %d after replace, want 1", n)
	}

	_, rows, err := db.QueryRaw(ctx, "SELECT id FROM snapshot")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != second.ID {
		t.Errorf("snapshot rows = %v, want id %s", rows, second.ID)
	}
}

func TestReplaceSnapshot_Unloaded(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	if err := db.ReplaceSnapshot(ctx, store.New(nil).Current()); err != nil {
		t.Fatalf("ReplaceSnapshot: %v", err)
	}
	n, _ := db.Count(ctx, "snapshot")
	if n != 0 {
		t.Errorf("snapshot rows = %d, want 0 before first load", n)
	}
}

func TestQueryRaw_Error(t *testing.T) {
	db := openMemDB(t)
	if _, _, err := db.QueryRaw(context.Background(), "SELECT * FROM nope"); err == nil {
		t.Error("expected error for unknown table")
	}
	if _, err := db.Count(context.Background(), "sqlite_master; DROP TABLE events"); err == nil {
		t.Error("expected error for unknown table name")
	}
}
