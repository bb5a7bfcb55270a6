// Package radar rescales player metrics onto a common 0–100 scale for
// player-versus-baseline comparison.
package radar

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pable/go-match-analytics/internal/model"
)

// FullMark is the top of the radar scale.
const FullMark = 100.0

// Metric names, in output order.
const (
	MetricPassAccuracy = "Pass Accuracy"
	MetricDuelSuccess  = "Duel Success"
	MetricShotAccuracy = "Shot Accuracy"
	MetricRecoveries   = "Recoveries"
	MetricInvolvement  = "Involvement"
)

// Coefficients are the linear scale factors for the count-based metrics.
type Coefficients struct {
	Recoveries float64 `koanf:"recoveries"`
	Touches    float64 `koanf:"touches"`
}

// DefaultCoefficients returns the stock tuning: recoveries ×7, touches ×1.5.
func DefaultCoefficients() Coefficients {
	return Coefficients{Recoveries: 7, Touches: 1.5}
}

// Profile is the raw input of a radar: three percentages and two counts.
type Profile struct {
	PassAccuracy    float64 `koanf:"pass_accuracy"`
	DuelSuccessRate float64 `koanf:"duel_success_rate"`
	ShotAccuracy    float64 `koanf:"shot_accuracy"`
	Recoveries      float64 `koanf:"recoveries"`
	TotalTouches    float64 `koanf:"total_touches"`
}

// CompactBaseline is the fixed reference profile used by compact radars.
func CompactBaseline() Profile {
	return Profile{
		PassAccuracy:    50,
		DuelSuccessRate: 50,
		ShotAccuracy:    50,
		Recoveries:      5,
		TotalTouches:    30,
	}
}

// ProfileOf extracts a radar profile from a player row.
func ProfileOf(p model.PlayerStat) Profile {
	return Profile{
		PassAccuracy:    p.PassAccuracy,
		DuelSuccessRate: p.DuelSuccessRate,
		ShotAccuracy:    p.ShotAccuracy,
		Recoveries:      float64(p.Recoveries),
		TotalTouches:    float64(p.TotalTouches),
	}
}

// Point is one spoke of the radar.
type Point struct {
	Metric   string  `json:"metric"`
	Player   float64 `json:"player"`
	Baseline float64 `json:"team"`
	FullMark float64 `json:"fullMark"`
}

// Build returns the five radar points in fixed order. Percentages pass
// through unchanged; counts are scaled as min(raw*coefficient, 100).
func Build(player, baseline Profile, c Coefficients) []Point {
	return []Point{
		{MetricPassAccuracy, player.PassAccuracy, baseline.PassAccuracy, FullMark},
		{MetricDuelSuccess, player.DuelSuccessRate, baseline.DuelSuccessRate, FullMark},
		{MetricShotAccuracy, player.ShotAccuracy, baseline.ShotAccuracy, FullMark},
		{MetricRecoveries, Scale(player.Recoveries, c.Recoveries), Scale(baseline.Recoveries, c.Recoveries), FullMark},
		{MetricInvolvement, Scale(player.TotalTouches, c.Touches), Scale(baseline.TotalTouches, c.Touches), FullMark},
	}
}

// Scale applies the linear scaling law clamped at FullMark.
func Scale(raw, coefficient float64) float64 {
	return math.Min(raw*coefficient, FullMark)
}

// TeamAverage averages the profiles of the outfield players. Goalkeepers are
// excluded; an empty list or a list of only goalkeepers gives a zero profile.
func TeamAverage(players []model.PlayerStat) Profile {
	var pass, duel, shot, rec, touch []float64
	for _, p := range players {
		if p.PositionCategory() == model.Goalkeeper {
			continue
		}
		pass = append(pass, p.PassAccuracy)
		duel = append(duel, p.DuelSuccessRate)
		shot = append(shot, p.ShotAccuracy)
		rec = append(rec, float64(p.Recoveries))
		touch = append(touch, float64(p.TotalTouches))
	}
	if len(pass) == 0 {
		return Profile{}
	}
	return Profile{
		PassAccuracy:    stat.Mean(pass, nil),
		DuelSuccessRate: stat.Mean(duel, nil),
		ShotAccuracy:    stat.Mean(shot, nil),
		Recoveries:      stat.Mean(rec, nil),
		TotalTouches:    stat.Mean(touch, nil),
	}
}
