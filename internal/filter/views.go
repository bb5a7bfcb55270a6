package filter

import (
	"strings"

	"github.com/pable/go-match-analytics/internal/model"
)

// Each view below keeps its own selection rule. Passes also accepts "Long Pass"
// by type and Pressure accepts a "Recovery" category.

// Shots keeps events whose type is "Shot".
func Shots(events []model.Event) []model.Event {
	return Where(events, func(e model.Event) bool {
		return e.EventType == "Shot"
	})
}

// Passes keeps the pass listing: category "Pass", or type "Pass" / "Long Pass".
func Passes(events []model.Event) []model.Event {
	return Where(events, func(e model.Event) bool {
		return e.EventCategory == "Pass" ||
			e.EventType == "Pass" ||
			e.EventType == "Long Pass"
	})
}

// Defensive keeps the defensive-action listing: duels, recoveries, clearances.
func Defensive(events []model.Event) []model.Event {
	return Where(events, func(e model.Event) bool {
		return e.EventCategory == "Duel" ||
			e.EventType == "Recovery" ||
			e.EventType == "Clearance" ||
			e.EventType == "Defensive Duel"
	})
}

// Pressure keeps the events counted on the pressure-zone map.
func Pressure(events []model.Event) []model.Event {
	return Where(events, func(e model.Event) bool {
		return e.EventCategory == "Duel" ||
			e.EventType == "Recovery" ||
			e.EventCategory == "Recovery" ||
			e.EventType == "Defensive Duel"
	})
}

// SearchPlayers keeps players whose name contains query, case-insensitively.
// An empty query keeps everyone.
func SearchPlayers(players []model.PlayerStat, query string) []model.PlayerStat {
	q := strings.ToLower(query)
	return Where(players, func(p model.PlayerStat) bool {
		return strings.Contains(strings.ToLower(p.Player), q)
	})
}

// ByPosition keeps players whose free-text position contains pos,
// case-insensitively. "" and "all" keep everyone.
func ByPosition(players []model.PlayerStat, pos string) []model.PlayerStat {
	if pos == "" || strings.EqualFold(pos, "all") {
		return Where(players, func(model.PlayerStat) bool { return true })
	}
	want := strings.ToLower(pos)
	return Where(players, func(p model.PlayerStat) bool {
		return strings.Contains(strings.ToLower(p.Position), want)
	})
}
