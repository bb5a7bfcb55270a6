package pitch

import (
	"fmt"

	"github.com/pable/go-match-analytics/internal/model"
)

// tacticalGrid is the resolution of the fixed tactical zones.
const tacticalGrid = 3

// Zone is one cell of the fixed 3×3 tactical grid. Row and Col are 1-indexed.
type Zone struct {
	Code       string
	Row, Col   int
	Label      string
	XMin, XMax float64
	YMin, YMax float64
}

// Center returns the midpoint of the zone.
func (z Zone) Center() (x, y float64) {
	return (z.XMin + z.XMax) / 2, (z.YMin + z.YMax) / 2
}

var (
	thirdNames = [tacticalGrid]string{"Def", "Mid", "Att"}
	laneNames  = [tacticalGrid]string{"Right", "Center", "Left"}
)

// DefaultZones lists the nine zone codes in row-major order.
var DefaultZones = []string{"R1C1", "R1C2", "R1C3", "R2C1", "R2C2", "R2C3", "R3C1", "R3C2", "R3C3"}

// DisplayOrder lists the zone codes top-to-bottom as drawn on a pitch
// diagram: row 3 first.
var DisplayOrder = []string{"R3C1", "R3C2", "R3C3", "R2C1", "R2C2", "R2C3", "R1C1", "R1C2", "R1C3"}

var zones = buildZones()

func buildZones() map[string]Zone {
	width := Size / tacticalGrid
	out := make(map[string]Zone, tacticalGrid*tacticalGrid)
	for r := 0; r < tacticalGrid; r++ {
		for c := 0; c < tacticalGrid; c++ {
			code := ZoneCode(r+1, c+1)
			out[code] = Zone{
				Code:  code,
				Row:   r + 1,
				Col:   c + 1,
				Label: thirdNames[c] + " " + laneNames[r],
				XMin:  float64(c) * width,
				XMax:  float64(c+1) * width,
				YMin:  float64(r) * width,
				YMax:  float64(r+1) * width,
			}
		}
	}
	return out
}

// ZoneCode formats a 1-indexed row/col pair as "R{row}C{col}".
func ZoneCode(row, col int) string {
	return fmt.Sprintf("R%dC%d", row, col)
}

// LookupZone returns the zone for a code.
func LookupZone(code string) (Zone, bool) {
	z, ok := zones[code]
	return z, ok
}

// ValidZone reports whether code is one of the nine tactical zones.
func ValidZone(code string) bool {
	_, ok := zones[code]
	return ok
}

// ZoneFor derives the tactical zone code of a point with the same cell rule
// as the heatmap grid. ok is false off the pitch.
func ZoneFor(x, y float64) (string, bool) {
	row, col, ok := Cell(x, y, tacticalGrid)
	if !ok {
		return "", false
	}
	return ZoneCode(row+1, col+1), true
}

// ZoneCenter returns the centre of a zone, or the pitch centre for an
// unknown code.
func ZoneCenter(code string) (x, y float64) {
	z, ok := zones[code]
	if !ok {
		return Size / 2, Size / 2
	}
	return z.Center()
}

// CountByZone counts events by their pre-assigned zone. Every requested code
// appears in the result, with 0 when nothing matched. An empty codes list
// means DefaultZones.
func CountByZone(events []model.Event, codes []string) map[string]int {
	if len(codes) == 0 {
		codes = DefaultZones
	}
	counts := make(map[string]int, len(codes))
	for _, code := range codes {
		counts[code] = 0
	}
	for _, e := range events {
		if _, wanted := counts[e.Zone]; wanted {
			counts[e.Zone]++
		}
	}
	return counts
}

// Rebin returns copies of events with Zone recomputed from coordinates.
// Events without usable coordinates keep their pre-assigned zone.
func Rebin(events []model.Event) []model.Event {
	out := make([]model.Event, len(events))
	for i, e := range events {
		if e.HasCoords {
			if code, ok := ZoneFor(e.X, e.Y); ok {
				e.Zone = code
			}
		}
		out[i] = e
	}
	return out
}
