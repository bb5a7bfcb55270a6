package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/storage"
)

var sqlDBPath string

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the loaded snapshot",
	Long: `Load the snapshot, mirror it into SQLite and run an arbitrary SQL query,
printing results as a table. The mirror is in memory unless --db is set.

Schema overview:
  snapshot(id, loaded_at, fingerprint)
  players(match_id, player, team, position, position_category, total_touches,
    passes_attempted, passes_successful, pass_accuracy, duels_attempted, duels_won,
    duel_success_rate, shots_attempted, shots_on_target, shot_accuracy, goals,
    recoveries, defensive_actions, crosses_attempted, crosses_successful)
  teams(match_id, team, pass_accuracy, conversion_rate, defensive_duels_won,
    fields TEXT -- every source column as JSON, use json_extract(fields, '$.col'))
  events(seq, match_id, minute, second, player, team, event_type, event_category,
    outcome, x, y, zone, is_successful)
  matches(match_id, duration, total_events, player_count, teams)

Note: x, y and second are NULL when the source row had no value.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func init() {
	sqlCmd.Flags().StringVar(&sqlDBPath, "db", storage.MemoryPath, "SQLite file to mirror into")
	rootCmd.AddCommand(sqlCmd)
}

// openMirror loads the snapshot and writes it into a fresh SQLite mirror.
func openMirror(ctx context.Context, path string) (*storage.DB, error) {
	engine, _ := openEngine()
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ReplaceSnapshot(ctx, engine.Store().Current()); err != nil {
		db.Close()
		return nil, fmt.Errorf("mirror snapshot: %w", err)
	}
	return db, nil
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	ctx := context.Background()
	db, err := openMirror(ctx, sqlDBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	return printQuery(ctx, db, query)
}

func printQuery(ctx context.Context, db *storage.DB, query string) error {
	cols, rows, err := db.QueryRaw(ctx, query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
