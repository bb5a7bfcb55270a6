// Package analytics is the query surface over the record store: every view
// filters the current snapshot and hands the result to one of the pure
// binning, bucketing, aggregation or normalization packages.
package analytics

import (
	"fmt"
	"strings"

	"github.com/pable/go-match-analytics/internal/aggregator"
	"github.com/pable/go-match-analytics/internal/config"
	"github.com/pable/go-match-analytics/internal/filter"
	"github.com/pable/go-match-analytics/internal/metrics"
	"github.com/pable/go-match-analytics/internal/model"
	"github.com/pable/go-match-analytics/internal/pitch"
	"github.com/pable/go-match-analytics/internal/radar"
	"github.com/pable/go-match-analytics/internal/store"
	"github.com/pable/go-match-analytics/internal/timeline"
)

// Options tunes the engine's views.
type Options struct {
	Coefficients    radar.Coefficients
	CompactBaseline radar.Profile
	HeatmapFull     int
	HeatmapPlayer   int
	HeatmapCompact  int
	TimelineWidth   int
}

// DefaultOptions mirrors config.New.
func DefaultOptions() Options {
	return OptionsFrom(config.New())
}

// OptionsFrom extracts engine options from process configuration.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Coefficients:    cfg.Coefficients(),
		CompactBaseline: cfg.CompactBaseline,
		HeatmapFull:     cfg.HeatmapFull,
		HeatmapPlayer:   cfg.HeatmapPlayer,
		HeatmapCompact:  cfg.HeatmapCompact,
		TimelineWidth:   cfg.TimelineWidth,
	}
}

// Engine answers analytics queries against a Store.
type Engine struct {
	store *store.Store
	opts  Options
}

// New returns an Engine reading from st.
func New(st *store.Store, opts Options) *Engine {
	return &Engine{store: st, opts: opts}
}

// Store exposes the underlying record store.
func (e *Engine) Store() *store.Store { return e.store }

// Options returns the engine's options.
func (e *Engine) Options() Options { return e.opts }

func count(view string) { metrics.Queries.WithLabelValues(view).Inc() }

// LoadSnapshot replaces the current snapshot.
func (e *Engine) LoadSnapshot(src store.Sources) store.LoadReport {
	return e.store.Load(src)
}

// Health reports the store's status.
func (e *Engine) Health() store.Health {
	count("health")
	return e.store.Health()
}

// ---- Listings ----

// QueryEvents returns the events matching c in source order.
func (e *Engine) QueryEvents(c filter.Criteria) []model.Event {
	count("events")
	return filter.Apply(e.store.Current().Events(), c)
}

// QueryPlayers returns the player rows matching c.
func (e *Engine) QueryPlayers(c filter.Criteria) []model.PlayerStat {
	count("players")
	return filter.Apply(e.store.Current().Players(), c)
}

// QueryTeams returns the team rows matching c.
func (e *Engine) QueryTeams(c filter.Criteria) []model.TeamStat {
	count("teams")
	return filter.Apply(e.store.Current().Teams(), c)
}

// Matches returns every match summary.
func (e *Engine) Matches() []model.MatchSummary {
	count("matches")
	return e.store.Current().Matches()
}

// Shots returns shot events matching c.
func (e *Engine) Shots(c filter.Criteria) []model.Event {
	count("shots")
	return filter.Shots(filter.Apply(e.store.Current().Events(), c))
}

// Passes returns pass events matching c.
func (e *Engine) Passes(c filter.Criteria) []model.Event {
	count("passes")
	return filter.Passes(filter.Apply(e.store.Current().Events(), c))
}

// Defensive returns defensive events matching c.
func (e *Engine) Defensive(c filter.Criteria) []model.Event {
	count("defensive")
	return filter.Defensive(filter.Apply(e.store.Current().Events(), c))
}

// SearchPlayers returns player rows whose name contains query.
func (e *Engine) SearchPlayers(query, position string, c filter.Criteria) []model.PlayerStat {
	count("search")
	players := filter.Apply(e.store.Current().Players(), c)
	players = filter.SearchPlayers(players, query)
	return filter.ByPosition(players, position)
}

// ---- Identity lookups ----

// Player returns the rows for one player, optionally narrowed to a match.
// The name matches case-insensitively on whole words, so "john" returns the
// rows of every player with a "John" in their name.
func (e *Engine) Player(name, matchID string) ([]model.PlayerStat, error) {
	count("player")
	rows := filter.Apply(e.store.Current().Players(), filter.Criteria{Player: name, MatchID: matchID})
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: player %q", ErrNotFound, name)
	}
	return rows, nil
}

// Match returns the summary for matchID.
func (e *Engine) Match(matchID string) (model.MatchSummary, error) {
	count("match")
	rows := filter.Apply(e.store.Current().Matches(), filter.Criteria{MatchID: matchID})
	if len(rows) == 0 {
		return model.MatchSummary{}, fmt.Errorf("%w: match %q", ErrNotFound, strings.TrimSpace(matchID))
	}
	return rows[0], nil
}

// ---- Spatial ----

// ZoneCounts counts events per zone code; see pitch.CountByZone.
func (e *Engine) ZoneCounts(events []model.Event, codes []string) map[string]int {
	return pitch.CountByZone(events, codes)
}

// PressureZones counts defensive pressure events per tactical zone.
func (e *Engine) PressureZones(c filter.Criteria) map[string]int {
	count("zones_pressure")
	events := filter.Pressure(filter.Apply(e.store.Current().Events(), c))
	return pitch.CountByZone(events, nil)
}

// ZoneActivity counts all events matching c per tactical zone.
func (e *Engine) ZoneActivity(c filter.Criteria) map[string]int {
	count("zones_activity")
	return pitch.CountByZone(filter.Apply(e.store.Current().Events(), c), nil)
}

// HeatmapGrid bins events into an n×n grid. n < 1 uses the full-field size.
func (e *Engine) HeatmapGrid(events []model.Event, n int) []pitch.GridCell {
	count("heatmap")
	if n < 1 {
		n = e.opts.HeatmapFull
	}
	return pitch.BinGrid(events, n)
}

// PlayerHeatmap bins one player's events. n < 1 uses the per-player size.
// The grid is returned zero-filled when the player has no events.
func (e *Engine) PlayerHeatmap(name, matchID string, n int) []pitch.GridCell {
	count("player_heatmap")
	if n < 1 {
		n = e.opts.HeatmapPlayer
	}
	events := filter.Apply(e.store.Current().Events(), filter.Criteria{Player: name, MatchID: matchID})
	return pitch.BinGrid(events, n)
}

// ---- Temporal ----

// Timeline buckets events into fixed-width intervals. width < 1 uses the
// configured width.
func (e *Engine) Timeline(events []model.Event, width int) []timeline.Interval {
	count("timeline")
	if width < 1 {
		width = e.opts.TimelineWidth
	}
	return timeline.Bucket(events, width)
}

// ---- KPIs ----

// Overview computes match KPIs from the events matching c, merged with the
// first team row of the same match.
func (e *Engine) Overview(c filter.Criteria) aggregator.OverviewStat {
	count("overview")
	snap := e.store.Current()
	events := filter.Apply(snap.Events(), c)
	var team *model.TeamStat
	if teams := filter.Apply(snap.Teams(), filter.Criteria{MatchID: c.MatchID}); len(teams) > 0 {
		team = &teams[0]
	}
	return aggregator.Overview(events, team)
}

// Breakdown counts events per category with success rates.
func (e *Engine) Breakdown(c filter.Criteria) []aggregator.CategoryCount {
	count("breakdown")
	return aggregator.EventBreakdown(filter.Apply(e.store.Current().Events(), c))
}

// ShotMap groups shots matching c by classified outcome.
func (e *Engine) ShotMap(c filter.Criteria) aggregator.ShotGroups {
	count("shot_map")
	return aggregator.ShotsByOutcome(filter.Shots(filter.Apply(e.store.Current().Events(), c)))
}

// TopPerformers ranks the player rows matching c by metric.
func (e *Engine) TopPerformers(c filter.Criteria, metric string, n int) ([]model.PlayerStat, error) {
	count("top")
	if _, ok := (model.PlayerStat{}).Metric(metric); !ok {
		return nil, fmt.Errorf("unknown player metric %q", metric)
	}
	return aggregator.TopPerformers(filter.Apply(e.store.Current().Players(), c), metric, n), nil
}

// PrimaryRow picks the row a single-player view is built from: the first
// row whose full name equals name (case and spacing ignored), else rows[0].
// rows must not be empty.
func PrimaryRow(rows []model.PlayerStat, name string) model.PlayerStat {
	want := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	for _, r := range rows {
		if strings.Join(strings.Fields(strings.ToLower(r.Player)), " ") == want {
			return r
		}
	}
	return rows[0]
}

// ---- Radar ----

// Radar builds the five-point profile with the configured coefficients.
func (e *Engine) Radar(player, baseline radar.Profile) []radar.Point {
	count("radar")
	return radar.Build(player, baseline, e.opts.Coefficients)
}

// PlayerRadar builds a player's radar against the average of the
// outfield players of their team in the same match. When name matches
// several players the row is chosen by PrimaryRow.
func (e *Engine) PlayerRadar(name, matchID string) ([]radar.Point, error) {
	rows, err := e.Player(name, matchID)
	if err != nil {
		return nil, err
	}
	p := PrimaryRow(rows, name)
	mates := filter.Apply(e.store.Current().Players(), filter.Criteria{
		MatchID: fmt.Sprint(p.MatchID),
		Team:    p.Team,
	})
	return e.Radar(radar.ProfileOf(p), radar.TeamAverage(mates)), nil
}

// CompactRadar builds a player's radar against the configured compact
// baseline.
func (e *Engine) CompactRadar(name, matchID string) ([]radar.Point, error) {
	rows, err := e.Player(name, matchID)
	if err != nil {
		return nil, err
	}
	return e.Radar(radar.ProfileOf(PrimaryRow(rows, name)), e.opts.CompactBaseline), nil
}
