package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-match-analytics/internal/aggregator"
	"github.com/pable/go-match-analytics/internal/model"
	"github.com/pable/go-match-analytics/internal/store"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// sampleFlag marks rates computed from few attempts.
func sampleFlag(n int) string {
	switch {
	case n == 0:
		return "-"
	case n < 5:
		return "*"
	}
	return ""
}

func pct(v float64) string { return fmt.Sprintf("%.1f%%", v) }

// PrintMatchSummary prints a one-line header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	teams := strings.Join(s.Teams, " vs ")
	if teams == "" {
		teams = "?"
	}
	fmt.Fprintf(w, "\nMatch: %d  |  %s  |  Duration: %.0f min  |  Events: %d  |  Players: %d\n\n",
		s.MatchID, teams, s.Duration, s.TotalEvents, s.PlayerCount)
}

// PrintMatches prints one row per match summary.
func PrintMatches(w io.Writer, matches []model.MatchSummary) {
	table := newTable(w)
	table.Header("MATCH", "TEAMS", "DURATION", "EVENTS", "PLAYERS")
	for _, m := range matches {
		table.Append(
			strconv.Itoa(m.MatchID),
			strings.Join(m.Teams, " vs "),
			fmt.Sprintf("%.0f", m.Duration),
			strconv.Itoa(m.TotalEvents),
			strconv.Itoa(m.PlayerCount),
		)
	}
	table.Render()
}

// PrintPlayerTable prints per-player rows. A row whose name equals focus
// (case-insensitive) is marked with ">".
func PrintPlayerTable(w io.Writer, players []model.PlayerStat, focus string) {
	table := newTable(w)
	table.Header(
		" ", "MATCH", "NAME", "TEAM", "POS", "TOUCH", "PASS", "PASS%", "DUEL%",
		"SHOTS", "SOT", "GOALS", "REC", "DEF", "CROSS%",
	)
	for _, p := range players {
		marker := " "
		if focus != "" && strings.EqualFold(p.Player, focus) {
			marker = ">"
		}
		table.Append(
			marker,
			strconv.Itoa(p.MatchID),
			p.Player,
			p.Team,
			p.PositionCategory().String(),
			strconv.Itoa(p.TotalTouches),
			fmt.Sprintf("%d/%d", p.PassesSuccessful, p.PassesAttempted),
			pct(p.PassAccuracy)+sampleFlag(p.PassesAttempted),
			pct(p.DuelSuccessRate),
			strconv.Itoa(p.ShotsAttempted),
			strconv.Itoa(p.ShotsOnTarget),
			strconv.Itoa(p.Goals),
			strconv.Itoa(p.Recoveries),
			strconv.Itoa(p.DefensiveActions),
			pct(p.CrossAccuracy())+sampleFlag(p.CrossesAttempted),
		)
	}
	table.Render()
}

// PrintTeamTable prints team rows with every raw column, in sorted column
// order after match and team.
func PrintTeamTable(w io.Writer, teams []model.TeamStat) {
	colSet := make(map[string]bool)
	for _, t := range teams {
		for k := range t.Fields {
			if k != model.AttrMatchID && k != model.AttrTeam {
				colSet[k] = true
			}
		}
	}
	cols := make([]string, 0, len(colSet))
	for k := range colSet {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	header := []any{"MATCH", "TEAM"}
	for _, c := range cols {
		header = append(header, strings.ToUpper(c))
	}
	table := newTable(w)
	table.Header(header...)
	for _, t := range teams {
		rec := []any{strconv.Itoa(t.MatchID), t.Team}
		for _, c := range cols {
			rec = append(rec, formatField(t.Fields[c]))
		}
		table.Append(rec...)
	}
	table.Render()
}

// PrintEventTable prints events in order.
func PrintEventTable(w io.Writer, events []model.Event) {
	table := newTable(w)
	table.Header("MIN", "PLAYER", "TEAM", "TYPE", "CATEGORY", "OUTCOME", "X", "Y", "ZONE", "OK")
	for _, e := range events {
		minute := strconv.Itoa(e.Minute)
		if e.Second != nil {
			minute = fmt.Sprintf("%d:%02d", e.Minute, *e.Second)
		}
		x, y := "-", "-"
		if e.HasCoords {
			x, y = fmt.Sprintf("%.1f", e.X), fmt.Sprintf("%.1f", e.Y)
		}
		ok := ""
		if e.IsSuccessful {
			ok = "✓"
		}
		table.Append(minute, e.Player, e.Team, e.EventType, e.EventCategory, e.Outcome, x, y, e.Zone, ok)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d events)\n", len(events))
}

// PrintShotMap prints shots grouped by outcome with a shot-quality estimate.
func PrintShotMap(w io.Writer, groups aggregator.ShotGroups, xg func(x, y float64) float64) {
	kinds := []model.OutcomeKind{
		model.OutcomeGoal, model.OutcomeOnTarget, model.OutcomeBlocked,
		model.OutcomeOffTarget, model.OutcomeUnknown,
	}
	table := newTable(w)
	table.Header("OUTCOME", "MIN", "PLAYER", "TEAM", "X", "Y", "XG")
	total := 0.0
	for _, k := range kinds {
		for _, s := range groups[k] {
			quality := "-"
			if s.HasCoords {
				v := xg(s.X, s.Y)
				total += v
				quality = fmt.Sprintf("%.2f", v)
			}
			table.Append(k.String(), strconv.Itoa(s.Minute), s.Player, s.Team,
				fmt.Sprintf("%.1f", s.X), fmt.Sprintf("%.1f", s.Y), quality)
		}
	}
	table.Render()
	fmt.Fprintf(w, "\nGoals: %d  |  On target: %d  |  Blocked: %d  |  Off target: %d  |  xG: %.2f\n",
		len(groups[model.OutcomeGoal]), len(groups[model.OutcomeOnTarget]),
		len(groups[model.OutcomeBlocked]), len(groups[model.OutcomeOffTarget]), total)
}

// PrintBreakdown prints per-category counts and success rates.
func PrintBreakdown(w io.Writer, rows []aggregator.CategoryCount) {
	table := newTable(w)
	table.Header("CATEGORY", "COUNT", "SUCCESSFUL", "SUCCESS%")
	for _, r := range rows {
		table.Append(r.Category, strconv.Itoa(r.Count), strconv.Itoa(r.Successful), pct(r.SuccessRate))
	}
	table.Render()
}

// PrintHealth prints the store status.
func PrintHealth(w io.Writer, h store.Health) {
	status := "empty"
	if h.Loaded {
		status = "ok"
	}
	fmt.Fprintf(w, "status:    %s\n", status)
	if h.Loaded {
		fmt.Fprintf(w, "snapshot:  %s\n", h.SnapshotID)
		fmt.Fprintf(w, "loaded_at: %s\n", h.LoadedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "players:   %d\nteams:     %d\nevents:    %d\nmatches:   %d\n",
		h.Players, h.Teams, h.Events, h.Matches)
}

// PrintLoadReport prints the outcome of a snapshot load, one line per
// failed collection.
func PrintLoadReport(w io.Writer, r store.LoadReport) {
	fmt.Fprintf(w, "snapshot %s: %d players, %d teams, %d events, %d matches (%s)\n",
		r.SnapshotID, r.Players, r.Teams, r.Events, r.Matches, r.Duration.Round(time.Millisecond))
	names := make([]string, 0, len(r.Failures))
	for name := range r.Failures {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  ! %s: %v\n", name, r.Failures[name])
	}
}

func formatField(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
