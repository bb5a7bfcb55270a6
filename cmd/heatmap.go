package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/filter"
	"github.com/pable/go-match-analytics/internal/pitch"
	"github.com/pable/go-match-analytics/internal/report"
)

var (
	heatmapFilter  criteriaFlags
	heatmapSize    int
	heatmapCompact bool
	heatmapJSON    bool
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Bin located events into an n×n pitch grid",
	Long: `Bin events with coordinates into an n×n grid over the 100×100 pitch.
The default size comes from heatmap_full (10); --compact uses heatmap_compact.
With --player the per-player size (heatmap_player) is the default.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, _ := openEngine()
		c := heatmapFilter.criteria()

		n := heatmapSize
		if n == 0 {
			switch {
			case heatmapCompact:
				n = cfg.HeatmapCompact
			case c.Player != "":
				n = cfg.HeatmapPlayer
			default:
				n = cfg.HeatmapFull
			}
		}

		var grid []pitch.GridCell
		if c == (filter.Criteria{Player: c.Player, MatchID: c.MatchID}) && c.Player != "" {
			grid = engine.PlayerHeatmap(c.Player, c.MatchID, n)
		} else {
			grid = engine.HeatmapGrid(engine.QueryEvents(c), n)
		}

		if heatmapJSON {
			return printJSON(grid)
		}
		report.PrintHeatmap(os.Stdout, grid)
		fmt.Fprintf(os.Stdout, "%d cells\n", len(grid))
		return nil
	},
}

func init() {
	heatmapFilter.register(heatmapCmd, true)
	heatmapCmd.Flags().IntVar(&heatmapSize, "size", 0, "grid size n (0 = configured default)")
	heatmapCmd.Flags().BoolVar(&heatmapCompact, "compact", false, "use the compact grid size")
	heatmapCmd.Flags().BoolVar(&heatmapJSON, "json", false, "print cells as JSON")
	rootCmd.AddCommand(heatmapCmd)
}
