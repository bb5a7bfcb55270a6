// Package aggregator computes rate KPIs and match overviews from event and
// player collections. Every function is pure and total: a zero denominator
// yields 0, never NaN or an error.
package aggregator

import (
	"strings"

	"github.com/pable/go-match-analytics/internal/model"
)

// SafeRate returns num/den as a percentage rounded half-up to one decimal,
// or 0 when den is 0.
func SafeRate(num, den int) float64 {
	if den == 0 {
		return 0
	}
	if den < 0 {
		num, den = -num, -den
	}
	// tenths of a percent, half-up, in integers: floor((1000*num/den) + 1/2)
	n, d := int64(num)*2000+int64(den), int64(den)*2
	tenths := n / d
	if n%d != 0 && n < 0 {
		tenths--
	}
	return float64(tenths) / 10
}

// PassAccuracy is successful passes as a percentage of attempts.
func PassAccuracy(successful, attempted int) float64 { return SafeRate(successful, attempted) }

// DuelSuccessRate is duels won as a percentage of duels contested.
func DuelSuccessRate(won, attempted int) float64 { return SafeRate(won, attempted) }

// ShotAccuracy is shots on target as a percentage of shots.
func ShotAccuracy(onTarget, attempted int) float64 { return SafeRate(onTarget, attempted) }

// ConversionRate is goals as a percentage of shots.
func ConversionRate(goals, shots int) float64 { return SafeRate(goals, shots) }

// OverviewStat is the match overview derived from a filtered event set,
// optionally merged with the raw team row.
type OverviewStat struct {
	TotalShots        int
	ShotsOnTarget     int
	Goals             int
	TotalPasses       int
	SuccessfulPasses  int
	PassAccuracy      float64
	ProgressivePasses int
	TotalDuels        int
	DuelsWon          int
	DuelSuccessRate   float64
	Recoveries        int
	TotalEvents       int
	ShotAccuracy      float64
	ConversionRate    float64

	// Team is the raw team row the overview was merged with, nil if none.
	Team *model.TeamStat
}

// Overview derives the overview counts from events. Outcome tokens are
// matched case-sensitively: a shot is on target when its outcome contains
// "On Target", a goal when it contains "Goal"; a progressive pass has
// outcome exactly "Progressive Pass".
func Overview(events []model.Event, team *model.TeamStat) OverviewStat {
	var ov OverviewStat
	ov.TotalEvents = len(events)
	for _, e := range events {
		if e.EventType == "Shot" {
			ov.TotalShots++
			if strings.Contains(e.Outcome, "On Target") {
				ov.ShotsOnTarget++
			}
			if strings.Contains(e.Outcome, "Goal") {
				ov.Goals++
			}
		}
		if e.EventCategory == "Pass" {
			ov.TotalPasses++
			if e.IsSuccessful {
				ov.SuccessfulPasses++
			}
		}
		if e.Outcome == "Progressive Pass" {
			ov.ProgressivePasses++
		}
		if e.EventCategory == "Duel" {
			ov.TotalDuels++
			if e.IsSuccessful {
				ov.DuelsWon++
			}
		}
		if e.EventType == "Recovery" {
			ov.Recoveries++
		}
	}
	ov.PassAccuracy = PassAccuracy(ov.SuccessfulPasses, ov.TotalPasses)
	ov.DuelSuccessRate = DuelSuccessRate(ov.DuelsWon, ov.TotalDuels)
	ov.ShotAccuracy = ShotAccuracy(ov.ShotsOnTarget, ov.TotalShots)
	ov.ConversionRate = ConversionRate(ov.Goals, ov.TotalShots)
	ov.Team = team
	return ov
}

// Fields flattens the overview into a single keyed map. Derived values are
// written first under snake_case keys; every column of the raw team row is
// then written over them, so the raw row wins on a key collision.
func (ov OverviewStat) Fields() map[string]any {
	out := map[string]any{
		"total_shots":        ov.TotalShots,
		"shots_on_target":    ov.ShotsOnTarget,
		"goals":              ov.Goals,
		"total_passes":       ov.TotalPasses,
		"successful_passes":  ov.SuccessfulPasses,
		"pass_accuracy":      ov.PassAccuracy,
		"progressive_passes": ov.ProgressivePasses,
		"total_duels":        ov.TotalDuels,
		"duels_won":          ov.DuelsWon,
		"duel_success_rate":  ov.DuelSuccessRate,
		"recoveries":         ov.Recoveries,
		"total_events":       ov.TotalEvents,
		"shot_accuracy":      ov.ShotAccuracy,
		"conversion_rate":    ov.ConversionRate,
	}
	if ov.Team == nil {
		return out
	}
	for k, v := range ov.Team.Fields {
		out[k] = v
	}
	return out
}
