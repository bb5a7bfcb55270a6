package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/report"
)

var (
	teamsFilter criteriaFlags
	teamsJSON   bool
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List team stat rows with every source column",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, _ := openEngine()
		teams := engine.QueryTeams(teamsFilter.criteria())
		if teamsJSON {
			return printJSON(teams)
		}
		if len(teams) == 0 {
			fmt.Fprintln(os.Stdout, "(no team rows)")
			return nil
		}
		report.PrintTeamTable(os.Stdout, teams)
		return nil
	},
}

func init() {
	teamsFilter.register(teamsCmd, false)
	teamsCmd.Flags().BoolVar(&teamsJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(teamsCmd)
}
