package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/analytics"
	"github.com/pable/go-match-analytics/internal/filter"
	"github.com/pable/go-match-analytics/internal/ingest"
	"github.com/pable/go-match-analytics/internal/report"
	"github.com/pable/go-match-analytics/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session over the loaded snapshot. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// shellSession holds the engine and the match scope of a REPL session.
type shellSession struct {
	engine *analytics.Engine
	paths  ingest.Paths
	match  string
	db     *storage.DB
}

func runShell(_ *cobra.Command, _ []string) error {
	engine, paths := openEngine()
	s := &shellSession{engine: engine, paths: paths}
	defer func() {
		if s.db != nil {
			s.db.Close()
		}
	}()

	cGreeting.Println("matchstats shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("matchstats")
		if s.match != "" {
			cMuted.Printf("[%s]", s.match)
		}
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "health":
			report.PrintHealth(os.Stdout, s.engine.Health())
		case "reload":
			s.reload()
		case "use":
			s.use(args)
		case "players":
			report.PrintPlayerTable(os.Stdout, s.engine.QueryPlayers(s.scope()), "")
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <name>")
				continue
			}
			s.player(strings.Join(args, " "))
		case "overview":
			report.PrintOverview(os.Stdout, s.engine.Overview(s.scope()))
		case "timeline":
			width := 0
			if len(args) > 0 {
				width, _ = strconv.Atoi(args[0])
			}
			report.PrintTimeline(os.Stdout, s.engine.Timeline(s.engine.QueryEvents(s.scope()), width))
		case "zones":
			if len(args) > 0 && args[0] == "pressure" {
				report.PrintZoneGrid(os.Stdout, s.engine.PressureZones(s.scope()))
			} else {
				report.PrintZoneGrid(os.Stdout, s.engine.ZoneActivity(s.scope()))
			}
		case "heatmap":
			report.PrintHeatmap(os.Stdout, s.engine.HeatmapGrid(s.engine.QueryEvents(s.scope()), 0))
		case "sql":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: sql <query>")
				continue
			}
			s.sql(strings.Join(args, " "))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"health", "snapshot status and collection sizes"},
		{"reload", "re-read the source files"},
		{"use <match-id> | use", "scope later commands to one match, or clear"},
		{"players", "player table"},
		{"player <name>", "one player's rows and radar"},
		{"overview", "match KPIs merged with the team row"},
		{"timeline [width]", "per-interval activity"},
		{"zones [pressure]", "tactical zone counts"},
		{"heatmap", "full-field heatmap"},
		{"sql <query>", "query the snapshot mirror"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-26s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (s *shellSession) scope() filter.Criteria {
	return filter.Criteria{}.ForMatch(s.match)
}

func (s *shellSession) use(args []string) {
	if len(args) == 0 {
		s.match = ""
		return
	}
	if _, err := s.engine.Match(args[0]); err != nil {
		cWarn.Fprintf(os.Stderr, "no summary for match %q, scoping anyway\n", args[0])
	}
	s.match = args[0]
}

func (s *shellSession) reload() {
	rep := s.engine.LoadSnapshot(ingest.DirSource(s.paths))
	report.PrintLoadReport(os.Stdout, rep)
	if s.db != nil {
		// The mirror is rebuilt lazily on the next sql command.
		s.db.Close()
		s.db = nil
	}
}

func (s *shellSession) player(name string) {
	rows, err := s.engine.Player(name, s.match)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	report.PrintPlayerTable(os.Stdout, rows, name)
	points, err := s.engine.PlayerRadar(name, s.match)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	focus := analytics.PrimaryRow(rows, name).Player
	cHeader.Fprintf(os.Stdout, "\n--- radar: %s ---\n", focus)
	report.PrintRadar(os.Stdout, focus, points)
}

func (s *shellSession) sql(query string) {
	ctx := context.Background()
	if s.db == nil {
		db, err := storage.Open(storage.MemoryPath)
		if err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		if err := db.ReplaceSnapshot(ctx, s.engine.Store().Current()); err != nil {
			db.Close()
			cError.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		s.db = db
	}
	if err := printQuery(ctx, s.db, query); err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
}
