package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/report"
)

var (
	topFilter criteriaFlags
	topN      int
	topJSON   bool
)

var topCmd = &cobra.Command{
	Use:   "top <metric>",
	Short: "Top performers by a player metric",
	Long: `Rank players by a numeric metric, highest first. Metrics:
  total_touches, passes_attempted, passes_successful, pass_accuracy,
  duels_attempted, duels_won, duel_success_rate, shots_attempted,
  shots_on_target, shot_accuracy, goals, recoveries, defensive_actions,
  crosses_attempted, crosses_successful`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _ := openEngine()
		players, err := engine.TopPerformers(topFilter.criteria(), args[0], topN)
		if err != nil {
			return err
		}
		if topJSON {
			return printJSON(players)
		}
		report.PrintPlayerTable(os.Stdout, players, "")
		return nil
	},
}

func init() {
	topFilter.register(topCmd, false)
	topCmd.Flags().IntVarP(&topN, "num", "n", 5, "number of players")
	topCmd.Flags().BoolVar(&topJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(topCmd)
}
