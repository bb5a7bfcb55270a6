// Package filter narrows record collections with conjunctive equality
// predicates. Every function returns a fresh slice; inputs are never modified.
package filter

import (
	"strconv"
	"strings"

	"github.com/pable/go-match-analytics/internal/model"
)

// Criteria holds the optional filter values. An empty string means the filter
// was not supplied.
type Criteria struct {
	MatchID       string
	Team          string
	Player        string
	EventType     string
	EventCategory string
	Zone          string
}

// FromMap builds Criteria from loosely keyed parameters. Both snake_case and
// camelCase keys are accepted.
func FromMap(m map[string]string) Criteria {
	pick := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := m[k]; ok && v != "" {
				return v
			}
		}
		return ""
	}
	return Criteria{
		MatchID:       pick("match_id", "matchId"),
		Team:          pick("team"),
		Player:        pick("player"),
		EventType:     pick("event_type", "eventType"),
		EventCategory: pick("event_category", "eventCategory"),
		Zone:          pick("zone", "zone_3x3"),
	}
}

// IsZero reports whether no filter is supplied.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// ForMatch returns a copy of c restricted to a single match id.
func (c Criteria) ForMatch(matchID string) Criteria {
	c.MatchID = matchID
	return c
}

type predicate func(model.Record) bool

func (c Criteria) predicates() []predicate {
	var preds []predicate
	if c.MatchID != "" {
		want, err := strconv.Atoi(strings.TrimSpace(c.MatchID))
		if err != nil {
			// A malformed match id matches nothing.
			return []predicate{func(model.Record) bool { return false }}
		}
		preds = append(preds, func(r model.Record) bool {
			got, ok := r.MatchNumber()
			return ok && got == want
		})
	}
	if c.Team != "" {
		preds = append(preds, equals(model.AttrTeam, c.Team))
	}
	// A blank player filter is treated as not supplied.
	if want := strings.Fields(strings.ToLower(c.Player)); len(want) > 0 {
		preds = append(preds, func(r model.Record) bool {
			got, ok := r.Attr(model.AttrPlayer)
			return ok && nameMatches(strings.Fields(strings.ToLower(got)), want)
		})
	}
	if c.EventType != "" {
		preds = append(preds, equals(model.AttrEventType, c.EventType))
	}
	if c.EventCategory != "" {
		preds = append(preds, equals(model.AttrEventCategory, c.EventCategory))
	}
	if c.Zone != "" {
		preds = append(preds, equals(model.AttrZone, c.Zone))
	}
	return preds
}

// nameMatches reports whether want occurs as a run of whole words in name:
// "john" and "john smith" match "John Smith", "johnny" does not.
func nameMatches(name, want []string) bool {
	if len(want) == 0 {
		return false
	}
	for i := 0; i+len(want) <= len(name); i++ {
		match := true
		for j, w := range want {
			if name[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func equals(attr, want string) predicate {
	return func(r model.Record) bool {
		got, ok := r.Attr(attr)
		return ok && got == want
	}
}

// Apply returns the records that satisfy every supplied criterion, in input order.
func Apply[T model.Record](items []T, c Criteria) []T {
	preds := c.predicates()
	out := make([]T, 0, len(items))
	for _, it := range items {
		if matchesAll(it, preds) {
			out = append(out, it)
		}
	}
	return out
}

func matchesAll(r model.Record, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

// Where returns the elements for which keep is true, in input order.
func Where[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
