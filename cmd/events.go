package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/analytics"
	"github.com/pable/go-match-analytics/internal/filter"
	"github.com/pable/go-match-analytics/internal/model"
	"github.com/pable/go-match-analytics/internal/pitch"
	"github.com/pable/go-match-analytics/internal/report"
)

var (
	eventsFilter criteriaFlags
	eventsLimit  int
	eventsJSON   bool
)

// eventView selects a subset of events from the engine.
type eventView func(*analytics.Engine, filter.Criteria) []model.Event

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events, narrowed by any combination of filters",
	Args:  cobra.NoArgs,
	RunE:  runEventView((*analytics.Engine).QueryEvents),
}

var shotsCmd = &cobra.Command{
	Use:   "shots",
	Short: "List shots grouped by outcome with a shot-quality estimate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, _ := openEngine()
		c := eventsFilter.criteria()
		if eventsJSON {
			return printJSON(engine.Shots(c))
		}
		report.PrintShotMap(os.Stdout, engine.ShotMap(c), pitch.ExpectedGoals)
		return nil
	},
}

var passesCmd = &cobra.Command{
	Use:   "passes",
	Short: "List passes (category Pass, or type Pass / Long Pass)",
	Args:  cobra.NoArgs,
	RunE:  runEventView((*analytics.Engine).Passes),
}

var defensiveCmd = &cobra.Command{
	Use:   "defensive",
	Short: "List duels, recoveries and clearances",
	Args:  cobra.NoArgs,
	RunE:  runEventView((*analytics.Engine).Defensive),
}

func init() {
	for _, c := range []*cobra.Command{eventsCmd, shotsCmd, passesCmd, defensiveCmd} {
		eventsFilter.register(c, true)
		c.Flags().IntVar(&eventsLimit, "limit", 0, "print at most this many events (0 = all)")
		c.Flags().BoolVar(&eventsJSON, "json", false, "print as JSON")
		rootCmd.AddCommand(c)
	}
}

func runEventView(view eventView) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		engine, _ := openEngine()
		events := view(engine, eventsFilter.criteria())
		if eventsLimit > 0 && len(events) > eventsLimit {
			events = events[:eventsLimit]
		}
		if eventsJSON {
			return printJSON(events)
		}
		if len(events) == 0 {
			fmt.Fprintln(os.Stdout, "(no events)")
			return nil
		}
		report.PrintEventTable(os.Stdout, events)
		return nil
	}
}
