package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/filter"
	"github.com/pable/go-match-analytics/internal/pitch"
	"github.com/pable/go-match-analytics/internal/report"
)

var (
	zonesFilter criteriaFlags
	zonesRebin  bool
	zonesCodes  []string
	zonesJSON   bool
)

var zonesCmd = &cobra.Command{
	Use:   "zones <pressure|activity>",
	Short: "Count events per tactical zone",
	Long: `Count events in each of the nine tactical zones (R1C1..R3C3).

  pressure  duels and recoveries only
  activity  every event

Zones come from the source file's zone column. --rebin recomputes them
from x/y coordinates instead.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"pressure", "activity"},
	RunE:      runZones,
}

func init() {
	zonesFilter.register(zonesCmd, true)
	zonesCmd.Flags().BoolVar(&zonesRebin, "rebin", false, "derive zones from coordinates")
	zonesCmd.Flags().StringSliceVar(&zonesCodes, "codes", nil, "count only these zone codes")
	zonesCmd.Flags().BoolVar(&zonesJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(zonesCmd)
}

func runZones(cmd *cobra.Command, args []string) error {
	kind := strings.ToLower(args[0])
	if kind != "pressure" && kind != "activity" {
		return fmt.Errorf("unknown zone view %q (want pressure or activity)", args[0])
	}
	for _, code := range zonesCodes {
		if !pitch.ValidZone(code) {
			return fmt.Errorf("invalid zone code %q", code)
		}
	}

	engine, _ := openEngine()
	c := zonesFilter.criteria()

	var counts map[string]int
	switch {
	case zonesRebin || len(zonesCodes) > 0:
		events := engine.QueryEvents(c)
		if kind == "pressure" {
			events = filter.Pressure(events)
		}
		if zonesRebin {
			events = pitch.Rebin(events)
		}
		counts = engine.ZoneCounts(events, zonesCodes)
	case kind == "pressure":
		counts = engine.PressureZones(c)
	default:
		counts = engine.ZoneActivity(c)
	}

	if zonesJSON {
		return printJSON(counts)
	}
	if len(zonesCodes) > 0 {
		report.PrintZoneCounts(os.Stdout, counts)
		return nil
	}
	report.PrintZoneGrid(os.Stdout, counts)
	return nil
}
