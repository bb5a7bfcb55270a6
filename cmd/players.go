package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/aggregator"
	"github.com/pable/go-match-analytics/internal/analytics"
	"github.com/pable/go-match-analytics/internal/filter"
	"github.com/pable/go-match-analytics/internal/report"
)

var (
	playersFilter   criteriaFlags
	playersSearch   string
	playersPosition string
	playersSort     string
	playersAsc      bool
	playersJSON     bool

	playerMatch string
	playerJSON  bool
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List player stat rows",
	Args:  cobra.NoArgs,
	RunE:  runPlayers,
}

var playerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "Show one player's rows, event breakdown, heatmap and radar",
	Long: `Show everything known about one player. The name is matched
case-insensitively on whole words, so "smith" finds "John Smith".`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayer,
}

func init() {
	playersFilter.register(playersCmd, false)
	playersCmd.Flags().StringVar(&playersSearch, "search", "", "keep names containing this text")
	playersCmd.Flags().StringVar(&playersPosition, "position", "", "keep positions containing this text (all = no filter)")
	playersCmd.Flags().StringVar(&playersSort, "sort", "", "sort by metric, e.g. pass_accuracy, recoveries")
	playersCmd.Flags().BoolVar(&playersAsc, "asc", false, "sort ascending")
	playersCmd.Flags().BoolVar(&playersJSON, "json", false, "print as JSON")

	playerCmd.Flags().StringVar(&playerMatch, "match", "", "match id")
	playerCmd.Flags().BoolVar(&playerJSON, "json", false, "print rows as JSON")

	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(playerCmd)
}

func runPlayers(cmd *cobra.Command, _ []string) error {
	engine, _ := openEngine()
	players := engine.SearchPlayers(playersSearch, playersPosition, playersFilter.criteria())
	if playersSort != "" {
		players = aggregator.SortPlayers(players, playersSort, playersAsc)
	}
	if playersJSON {
		return printJSON(players)
	}
	if len(players) == 0 {
		fmt.Fprintln(os.Stdout, "No players match. Run 'matchstats health' to check what loaded.")
		return nil
	}
	report.PrintPlayerTable(os.Stdout, players, "")
	return nil
}

func runPlayer(cmd *cobra.Command, args []string) error {
	name := args[0]
	engine, _ := openEngine()

	rows, err := engine.Player(name, playerMatch)
	if errors.Is(err, analytics.ErrNotFound) {
		return fmt.Errorf("no player named %q", name)
	}
	if err != nil {
		return err
	}
	if playerJSON {
		return printJSON(rows)
	}

	report.PrintPlayerTable(os.Stdout, rows, name)

	own := filter.Criteria{Player: name, MatchID: playerMatch}
	fmt.Fprintf(os.Stdout, "\nEvent breakdown (%d events)\n", len(engine.QueryEvents(own)))
	report.PrintBreakdown(os.Stdout, engine.Breakdown(own))

	fmt.Fprintln(os.Stdout, "\nHeatmap")
	report.PrintHeatmap(os.Stdout, engine.PlayerHeatmap(name, playerMatch, 0))

	points, err := engine.PlayerRadar(name, playerMatch)
	if err != nil {
		return err
	}
	report.PrintRadar(os.Stdout, analytics.PrimaryRow(rows, name).Player+" vs team average", points)
	return nil
}
