package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/analytics"
	"github.com/pable/go-match-analytics/internal/filter"
	"github.com/pable/go-match-analytics/internal/report"
)

var matchJSON bool

var matchCmd = &cobra.Command{
	Use:   "match [id]",
	Short: "List match summaries, or show one match",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _ := openEngine()
		if len(args) == 0 {
			matches := engine.Matches()
			if matchJSON {
				return printJSON(matches)
			}
			if len(matches) == 0 {
				fmt.Fprintln(os.Stdout, "No match summary loaded.")
				return nil
			}
			report.PrintMatches(os.Stdout, matches)
			return nil
		}

		m, err := engine.Match(args[0])
		if errors.Is(err, analytics.ErrNotFound) {
			return fmt.Errorf("no match with id %q", args[0])
		}
		if err != nil {
			return err
		}
		if matchJSON {
			return printJSON(m)
		}
		c := filter.Criteria{}.ForMatch(args[0])
		report.PrintMatchSummary(os.Stdout, m)
		report.PrintTeamTable(os.Stdout, engine.QueryTeams(c))
		fmt.Fprintln(os.Stdout)
		report.PrintZoneGrid(os.Stdout, engine.ZoneActivity(c))
		return nil
	},
}

func init() {
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(matchCmd)
}
