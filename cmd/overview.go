package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/report"
)

var (
	overviewFilter criteriaFlags
	overviewJSON   bool
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Match KPIs merged with the team row",
	Long: `Compute shots, passes, duels and recoveries from the events and merge in
the first team row of the match. A team column with the same key as a derived
KPI (e.g. pass_accuracy) replaces the derived value.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, _ := openEngine()
		c := overviewFilter.criteria()
		ov := engine.Overview(c)
		if overviewJSON {
			return printJSON(ov.Fields())
		}
		if m, err := engine.Match(c.MatchID); err == nil {
			report.PrintMatchSummary(os.Stdout, m)
		}
		report.PrintOverview(os.Stdout, ov)
		fmt.Fprintln(os.Stdout)
		report.PrintBreakdown(os.Stdout, engine.Breakdown(c))
		return nil
	},
}

func init() {
	overviewFilter.register(overviewCmd, false)
	overviewCmd.Flags().BoolVar(&overviewJSON, "json", false, "print merged fields as JSON")
	rootCmd.AddCommand(overviewCmd)
}
