package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/analytics"
	"github.com/pable/go-match-analytics/internal/radar"
	"github.com/pable/go-match-analytics/internal/report"
)

var (
	radarMatch   string
	radarCompact bool
	radarJSON    bool
)

var radarCmd = &cobra.Command{
	Use:   "radar <player>",
	Short: "Five-point radar profile for a player",
	Long: `Compare a player against their team's outfield average, or with
--compact against the fixed compact baseline. Recoveries and touches are scaled
by radar_recoveries and radar_touches and capped at 100.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _ := openEngine()

		var (
			points []radar.Point
			err    error
			label  = args[0] + " vs team average"
		)
		if radarCompact {
			points, err = engine.CompactRadar(args[0], radarMatch)
			label = args[0] + " vs baseline"
		} else {
			points, err = engine.PlayerRadar(args[0], radarMatch)
		}
		if errors.Is(err, analytics.ErrNotFound) {
			return fmt.Errorf("no player named %q", args[0])
		}
		if err != nil {
			return err
		}
		if radarJSON {
			return printJSON(points)
		}
		report.PrintRadar(os.Stdout, label, points)
		return nil
	},
}

func init() {
	radarCmd.Flags().StringVar(&radarMatch, "match", "", "match id")
	radarCmd.Flags().BoolVar(&radarCompact, "compact", false, "compare against compact_baseline")
	radarCmd.Flags().BoolVar(&radarJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(radarCmd)
}
