package model

import (
	"strconv"
	"strings"
)

// ---- Raw records produced by ingestion ----

// Event is one observed on-ball action.
type Event struct {
	MatchID       int
	Minute        int
	Second        *int // nil when the source row has no second column
	Player        string
	Team          string
	EventType     string // e.g. "Shot", "Pass", "Recovery", "Clearance"
	EventCategory string // e.g. "Pass", "Duel"
	Outcome       string // free text: "Goal", "On Target", "Blocked", "Progressive Pass", ...
	X, Y          float64
	HasCoords     bool   // X/Y were present in the source row
	Zone          string // pre-assigned 3x3 zone code (R1C1..R3C3), may be empty
	IsSuccessful  bool
}

// Attr returns the string form of a named filterable attribute.
func (e Event) Attr(name string) (string, bool) {
	switch name {
	case AttrMatchID:
		return strconv.Itoa(e.MatchID), true
	case AttrTeam:
		return e.Team, true
	case AttrPlayer:
		return e.Player, true
	case AttrEventType:
		return e.EventType, true
	case AttrEventCategory:
		return e.EventCategory, true
	case AttrZone:
		return e.Zone, e.Zone != ""
	}
	return "", false
}

// MatchNumber implements Record.
func (e Event) MatchNumber() (int, bool) { return e.MatchID, true }

// PlayerStat is one player's per-match summary row.
type PlayerStat struct {
	MatchID  int
	Player   string
	Team     string
	Position string // free text, see PositionCategory

	TotalTouches int

	PassesAttempted  int
	PassesSuccessful int
	PassAccuracy     float64

	DuelsAttempted  int
	DuelsWon        int
	DuelSuccessRate float64

	ShotsAttempted int
	ShotsOnTarget  int
	ShotAccuracy   float64
	Goals          int

	Recoveries       int
	DefensiveActions int

	CrossesAttempted  int
	CrossesSuccessful int
}

// Attr returns the string form of a named filterable attribute.
func (p PlayerStat) Attr(name string) (string, bool) {
	switch name {
	case AttrMatchID:
		return strconv.Itoa(p.MatchID), true
	case AttrTeam:
		return p.Team, true
	case AttrPlayer:
		return p.Player, true
	}
	return "", false
}

// MatchNumber implements Record.
func (p PlayerStat) MatchNumber() (int, bool) { return p.MatchID, true }

// PositionCategory folds the free-text position into one of four buckets.
func (p PlayerStat) PositionCategory() Position {
	return ParsePosition(p.Position)
}

// CrossAccuracy returns successful crosses as a percentage of attempts.
func (p PlayerStat) CrossAccuracy() float64 {
	if p.CrossesAttempted == 0 {
		return 0
	}
	return float64(p.CrossesSuccessful) / float64(p.CrossesAttempted) * 100
}

// Metric returns a named numeric column, used for sorting and top-N views.
func (p PlayerStat) Metric(name string) (float64, bool) {
	switch name {
	case "total_touches", "touches":
		return float64(p.TotalTouches), true
	case "passes_attempted":
		return float64(p.PassesAttempted), true
	case "passes_successful":
		return float64(p.PassesSuccessful), true
	case "pass_accuracy":
		return p.PassAccuracy, true
	case "duels_attempted":
		return float64(p.DuelsAttempted), true
	case "duels_won":
		return float64(p.DuelsWon), true
	case "duel_success_rate":
		return p.DuelSuccessRate, true
	case "shots_attempted", "shots":
		return float64(p.ShotsAttempted), true
	case "shots_on_target":
		return float64(p.ShotsOnTarget), true
	case "shot_accuracy":
		return p.ShotAccuracy, true
	case "goals":
		return float64(p.Goals), true
	case "recoveries":
		return float64(p.Recoveries), true
	case "defensive_actions":
		return float64(p.DefensiveActions), true
	case "crosses_attempted":
		return float64(p.CrossesAttempted), true
	case "crosses_successful":
		return float64(p.CrossesSuccessful), true
	}
	return 0, false
}

// TeamStat is one team-level row for a match. Fields keeps every raw column
// of the source row so views can surface columns the struct does not name.
type TeamStat struct {
	MatchID           int
	Team              string
	PassAccuracy      float64
	ConversionRate    float64
	DefensiveDuelsWon float64
	Fields            map[string]any
}

// Attr returns the string form of a named filterable attribute.
func (t TeamStat) Attr(name string) (string, bool) {
	switch name {
	case AttrMatchID:
		return strconv.Itoa(t.MatchID), true
	case AttrTeam:
		return t.Team, t.Team != ""
	}
	return "", false
}

// MatchNumber implements Record.
func (t TeamStat) MatchNumber() (int, bool) { return t.MatchID, true }

// MatchSummary describes the match itself.
type MatchSummary struct {
	MatchID     int      `json:"match_id"`
	Duration    float64  `json:"duration"`
	TotalEvents int      `json:"total_events"`
	PlayerCount int      `json:"player_count"`
	Teams       []string `json:"teams,omitempty"`
}

// Attr returns the string form of a named filterable attribute.
func (m MatchSummary) Attr(name string) (string, bool) {
	if name == AttrMatchID {
		return strconv.Itoa(m.MatchID), true
	}
	return "", false
}

// MatchNumber implements Record.
func (m MatchSummary) MatchNumber() (int, bool) { return m.MatchID, true }

// ---- Filterable attributes ----

const (
	AttrMatchID       = "match_id"
	AttrTeam          = "team"
	AttrPlayer        = "player"
	AttrEventType     = "event_type"
	AttrEventCategory = "event_category"
	AttrZone          = "zone"
)

// Record is any row the filter pipeline can narrow.
type Record interface {
	Attr(name string) (string, bool)
	MatchNumber() (int, bool)
}

// ---- Positions ----

// Position is the normalized player role.
type Position int

const (
	Midfielder Position = iota
	Goalkeeper
	Defender
	Forward
)

func (p Position) String() string {
	switch p {
	case Goalkeeper:
		return "Goalkeeper"
	case Defender:
		return "Defender"
	case Forward:
		return "Forward"
	default:
		return "Midfielder"
	}
}

// ParsePosition maps free-text positions ("Left Back", "GK", "Striker") onto
// the four categories. Unrecognised text is a Midfielder.
func ParsePosition(s string) Position {
	pos := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(pos, "goalkeeper") || pos == "gk":
		return Goalkeeper
	case strings.Contains(pos, "defender") || strings.Contains(pos, "back"):
		return Defender
	case strings.Contains(pos, "midfielder") || strings.Contains(pos, "mid"):
		return Midfielder
	case strings.Contains(pos, "forward") || strings.Contains(pos, "striker") || strings.Contains(pos, "wing"):
		return Forward
	}
	return Midfielder
}

// ---- Shot outcomes ----

// OutcomeKind is the classified result of a shot.
type OutcomeKind int

const (
	OutcomeUnknown OutcomeKind = iota
	OutcomeGoal
	OutcomeOnTarget
	OutcomeBlocked
	OutcomeOffTarget
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeGoal:
		return "Goal"
	case OutcomeOnTarget:
		return "On Target"
	case OutcomeBlocked:
		return "Blocked"
	case OutcomeOffTarget:
		return "Off Target"
	default:
		return "Unknown"
	}
}

// ClassifyOutcome maps raw outcome text to an OutcomeKind. Matching is
// case-insensitive and checked in precedence order goal, on target, blocked,
// off; empty text is Unknown and any other text counts as off target.
func ClassifyOutcome(outcome string) OutcomeKind {
	o := strings.ToLower(strings.TrimSpace(outcome))
	switch {
	case o == "":
		return OutcomeUnknown
	case strings.Contains(o, "goal"):
		return OutcomeGoal
	case strings.Contains(o, "on target"):
		return OutcomeOnTarget
	case strings.Contains(o, "blocked"):
		return OutcomeBlocked
	}
	return OutcomeOffTarget
}
