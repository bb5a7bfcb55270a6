package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/report"
)

var healthJSON bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show whether a snapshot loaded and its collection sizes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, _ := openEngine()
		h := engine.Health()
		if healthJSON {
			return printJSON(h)
		}
		report.PrintHealth(os.Stdout, h)
		return nil
	},
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(healthCmd)
}
