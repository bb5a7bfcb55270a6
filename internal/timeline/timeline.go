// Package timeline splits a match into fixed-width minute intervals.
package timeline

import (
	"fmt"

	"github.com/pable/go-match-analytics/internal/model"
)

// DefaultWidth is the interval width in minutes used when none is given.
const DefaultWidth = 5

// Interval holds the counts for the half-open minute range [Start, End).
type Interval struct {
	Label            string `json:"minute"`
	Start            int    `json:"start"`
	End              int    `json:"end"`
	Events           int    `json:"events"`
	Passes           int    `json:"passes"`
	SuccessfulPasses int    `json:"successful_passes"`
	PassAccuracy     int    `json:"pass_accuracy"`
	Duels            int    `json:"duels"`
	DuelsWon         int    `json:"duels_won"`
	Shots            int    `json:"shots"`
	Recoveries       int    `json:"recoveries"`
}

// Bucket partitions events into consecutive intervals of width minutes,
// starting at 0 and continuing while the interval start is <= the latest
// minute seen (0 for no events). The last interval may reach past that
// minute. A non-positive width is replaced by DefaultWidth.
func Bucket(events []model.Event, width int) []Interval {
	if width <= 0 {
		width = DefaultWidth
	}

	maxMinute := 0
	for _, e := range events {
		if e.Minute > maxMinute {
			maxMinute = e.Minute
		}
	}

	n := maxMinute/width + 1
	intervals := make([]Interval, n)
	for i := range intervals {
		start := i * width
		intervals[i] = Interval{
			Label: fmt.Sprintf("%d-%d", start, start+width),
			Start: start,
			End:   start + width,
		}
	}

	for _, e := range events {
		if e.Minute < 0 {
			continue
		}
		iv := &intervals[e.Minute/width]
		iv.Events++
		if e.EventCategory == "Pass" {
			iv.Passes++
			if e.IsSuccessful {
				iv.SuccessfulPasses++
			}
		}
		if e.EventCategory == "Duel" {
			iv.Duels++
			if e.IsSuccessful {
				iv.DuelsWon++
			}
		}
		if e.EventType == "Shot" {
			iv.Shots++
		}
		if e.EventType == "Recovery" {
			iv.Recoveries++
		}
	}

	for i := range intervals {
		iv := &intervals[i]
		if iv.Passes > 0 {
			// whole percent, half-up
			iv.PassAccuracy = (200*iv.SuccessfulPasses + iv.Passes) / (2 * iv.Passes)
		}
	}
	return intervals
}
