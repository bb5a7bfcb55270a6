package aggregator

import (
	"sort"

	"github.com/pable/go-match-analytics/internal/model"
)

// BreakdownCategories are the rows of the per-player event breakdown.
var BreakdownCategories = []string{"Pass", "Duel", "Recovery", "Shot"}

// CategoryCount is one row of an event breakdown.
type CategoryCount struct {
	Category    string
	Count       int
	Successful  int
	SuccessRate float64
}

// EventBreakdown counts events per breakdown category. An event belongs to a
// category when either its category or its type equals the category name.
func EventBreakdown(events []model.Event) []CategoryCount {
	out := make([]CategoryCount, 0, len(BreakdownCategories))
	for _, cat := range BreakdownCategories {
		row := CategoryCount{Category: cat}
		for _, e := range events {
			if e.EventCategory != cat && e.EventType != cat {
				continue
			}
			row.Count++
			if e.IsSuccessful {
				row.Successful++
			}
		}
		row.SuccessRate = SafeRate(row.Successful, row.Count)
		out = append(out, row)
	}
	return out
}

// SortPlayers returns a copy of players ordered by a named metric, highest
// first unless ascending. Unknown metrics sort as 0; ties keep input order.
func SortPlayers(players []model.PlayerStat, metric string, ascending bool) []model.PlayerStat {
	out := make([]model.PlayerStat, len(players))
	copy(out, players)
	value := func(p model.PlayerStat) float64 {
		v, _ := p.Metric(metric)
		return v
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return value(out[i]) < value(out[j])
		}
		return value(out[i]) > value(out[j])
	})
	return out
}

// TopPerformers returns the n best players by metric. n <= 0 means 5.
func TopPerformers(players []model.PlayerStat, metric string, n int) []model.PlayerStat {
	if n <= 0 {
		n = 5
	}
	sorted := SortPlayers(players, metric, false)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// ShotGroups buckets shots by classified outcome.
type ShotGroups map[model.OutcomeKind][]model.Event

// ShotsByOutcome groups events by model.ClassifyOutcome. Callers pass shots.
func ShotsByOutcome(shots []model.Event) ShotGroups {
	groups := make(ShotGroups)
	for _, s := range shots {
		kind := model.ClassifyOutcome(s.Outcome)
		groups[kind] = append(groups[kind], s)
	}
	return groups
}
