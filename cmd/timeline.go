package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/report"
)

var (
	timelineFilter criteriaFlags
	timelineWidth  int
	timelineJSON   bool
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Bucket events into fixed-width minute intervals",
	Long: `Bucket events into contiguous [i, i+width) minute intervals from minute 0
through the last event, with pass accuracy, duels, shots and recoveries for each.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, _ := openEngine()
		intervals := engine.Timeline(engine.QueryEvents(timelineFilter.criteria()), timelineWidth)
		if timelineJSON {
			return printJSON(intervals)
		}
		report.PrintTimeline(os.Stdout, intervals)
		return nil
	},
}

func init() {
	timelineFilter.register(timelineCmd, true)
	timelineCmd.Flags().IntVar(&timelineWidth, "width", 0, "interval width in minutes (0 = timeline_width)")
	timelineCmd.Flags().BoolVar(&timelineJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(timelineCmd)
}
