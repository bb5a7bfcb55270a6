package pitch

import "math"

// Real pitch dimensions in metres used when normalizing raw coordinates.
const (
	PitchLengthM = 105.0
	PitchWidthM  = 68.0
)

// goal mouth centre on the normalized pitch (attacking towards x=100)
const (
	goalX = 100.0
	goalY = 50.0
)

// Normalize converts raw coordinates on a maxX×maxY pitch to the 0..100
// scale. Non-positive dimensions fall back to 105×68.
func Normalize(x, y, maxX, maxY float64) (float64, float64) {
	if maxX <= 0 {
		maxX = PitchLengthM
	}
	if maxY <= 0 {
		maxY = PitchWidthM
	}
	return x / maxX * Size, y / maxY * Size
}

// Distance is the euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// FieldThird names the third of the pitch containing x.
func FieldThird(x float64) string {
	switch {
	case x < 33.33:
		return "Defensive Third"
	case x < 66.67:
		return "Middle Third"
	}
	return "Attacking Third"
}

// Lane names the channel containing y.
func Lane(y float64) string {
	switch {
	case y < 33.33:
		return "Right Lane"
	case y < 66.67:
		return "Central Lane"
	}
	return "Left Lane"
}

// ExpectedGoals is a deliberately simple shot-quality score in [0,1] based on
// distance and angle to the goal centre. It is illustrative only.
func ExpectedGoals(x, y float64) float64 {
	d := Distance(x, y, goalX, goalY)
	angle := math.Atan2(math.Abs(y-goalY), math.Abs(goalX-x)) * 180 / math.Pi

	var xg float64
	switch {
	case x >= 90: // inside the box
		xg = 0.4 - d*0.01 - angle*0.003
	case x >= 75: // edge of the box
		xg = 0.15 - d*0.005
	default:
		xg = 0.05 - d*0.001
	}
	return math.Max(0, math.Min(1, xg))
}
