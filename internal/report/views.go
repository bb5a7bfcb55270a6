package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pable/go-match-analytics/internal/aggregator"
	"github.com/pable/go-match-analytics/internal/pitch"
	"github.com/pable/go-match-analytics/internal/radar"
	"github.com/pable/go-match-analytics/internal/timeline"
)

// shades maps heat intensity to a glyph, coolest first.
var shades = []string{" ", "░", "▒", "▓", "█"}

// PrintZoneGrid prints the nine tactical zones as a 3×3 board in display
// order (attacking row first), with the count and share of each zone.
func PrintZoneGrid(w io.Writer, counts map[string]int) {
	total := 0
	for _, n := range counts {
		total += n
	}
	table := newTable(w)
	table.Header("", "COL 1", "COL 2", "COL 3")
	for r := 0; r < 3; r++ {
		codes := pitch.DisplayOrder[r*3 : r*3+3]
		z, _ := pitch.LookupZone(codes[0])
		rec := []any{fmt.Sprintf("ROW %d", z.Row)}
		for _, code := range codes {
			zone, _ := pitch.LookupZone(code)
			share := aggregator.SafeRate(counts[code], total)
			rec = append(rec, fmt.Sprintf("%s %s: %d (%.1f%%)", code, zone.Label, counts[code], share))
		}
		table.Append(rec...)
	}
	table.Render()
}

// PrintZoneCounts prints arbitrary zone counts sorted by code.
func PrintZoneCounts(w io.Writer, counts map[string]int) {
	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	table := newTable(w)
	table.Header("ZONE", "LABEL", "COUNT")
	for _, code := range codes {
		label := "-"
		if z, ok := pitch.LookupZone(code); ok {
			label = z.Label
		}
		table.Append(code, label, strconv.Itoa(counts[code]))
	}
	table.Render()
}

// PrintHeatmap draws the grid with the highest row at the top, one shaded
// glyph pair per cell, followed by the peak cell.
func PrintHeatmap(w io.Writer, grid []pitch.GridCell) {
	n := int(math.Sqrt(float64(len(grid))))
	if n*n != len(grid) || n == 0 {
		fmt.Fprintln(w, "(empty grid)")
		return
	}
	peak := pitch.MaxValue(grid)
	var b strings.Builder
	b.WriteString("+" + strings.Repeat("--", n) + "+\n")
	for row := n - 1; row >= 0; row-- {
		b.WriteString("|")
		for col := 0; col < n; col++ {
			g := shade(grid[row*n+col].Value, peak)
			b.WriteString(g + g)
		}
		b.WriteString("|\n")
	}
	b.WriteString("+" + strings.Repeat("--", n) + "+\n")
	fmt.Fprint(w, b.String())

	if peak == 0 {
		fmt.Fprintln(w, "no located events")
		return
	}
	for _, c := range grid {
		if c.Value == peak {
			fmt.Fprintf(w, "peak: %d events at (%.1f, %.1f)\n", peak, c.X, c.Y)
			break
		}
	}
}

func shade(v, peak int) string {
	if v == 0 || peak == 0 {
		return shades[0]
	}
	i := int(math.Ceil(float64(v) / float64(peak) * float64(len(shades)-1)))
	if i >= len(shades) {
		i = len(shades) - 1
	}
	return shades[i]
}

// PrintTimeline prints one row per interval.
func PrintTimeline(w io.Writer, intervals []timeline.Interval) {
	table := newTable(w)
	table.Header("MINUTE", "EVENTS", "PASSES", "PASS%", "DUELS", "WON", "SHOTS", "REC")
	for _, iv := range intervals {
		table.Append(
			iv.Label,
			strconv.Itoa(iv.Events),
			fmt.Sprintf("%d/%d", iv.SuccessfulPasses, iv.Passes),
			strconv.Itoa(iv.PassAccuracy)+"%",
			strconv.Itoa(iv.Duels),
			strconv.Itoa(iv.DuelsWon),
			strconv.Itoa(iv.Shots),
			strconv.Itoa(iv.Recoveries),
		)
	}
	table.Render()
}

// PrintOverview prints every overview field, sorted by key.
func PrintOverview(w io.Writer, ov aggregator.OverviewStat) {
	fields := ov.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	table := newTable(w)
	table.Header("FIELD", "VALUE")
	for _, k := range keys {
		table.Append(k, formatField(fields[k]))
	}
	table.Render()
}

// PrintRadar prints radar points with a bar for the player's value.
func PrintRadar(w io.Writer, player string, points []radar.Point) {
	fmt.Fprintf(w, "\nRadar: %s\n\n", player)
	table := newTable(w)
	table.Header("METRIC", "PLAYER", "BASELINE", "")
	for _, p := range points {
		bars := 0
		if p.FullMark > 0 {
			bars = int(math.Round(p.Player / p.FullMark * 20))
		}
		table.Append(p.Metric, fmt.Sprintf("%.1f", p.Player), fmt.Sprintf("%.1f", p.Baseline), strings.Repeat("#", bars))
	}
	table.Render()
}
