package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-match-analytics/internal/model"
)

func eventsOf(n int, team string) []model.Event {
	out := make([]model.Event, n)
	for i := range out {
		out[i] = model.Event{MatchID: 1, Minute: i, Team: team, EventCategory: "Pass"}
	}
	return out
}

func sourcesOf(events []model.Event) Sources {
	return Sources{
		Players: func() ([]model.PlayerStat, error) {
			return []model.PlayerStat{{MatchID: 1, Player: "John Smith"}}, nil
		},
		Teams: func() ([]model.TeamStat, error) {
			return []model.TeamStat{{MatchID: 1, Team: "Home", Fields: map[string]any{"possession": 55.0}}}, nil
		},
		Events: func() ([]model.Event, error) { return events, nil },
		Matches: func() ([]model.MatchSummary, error) {
			return []model.MatchSummary{{MatchID: 1, Teams: []string{"Home", "Away"}}}, nil
		},
		Fingerprint: "abc",
	}
}

func TestCurrent_BeforeLoad(t *testing.T) {
	s := New(nil)
	snap := s.Current()
	require.NotNil(t, snap)
	assert.False(t, snap.Loaded())
	assert.Empty(t, snap.Events())
	assert.Empty(t, snap.Players())

	h := s.Health()
	assert.False(t, h.Loaded)
	assert.Zero(t, h.Events)
	assert.Empty(t, h.SnapshotID)
}

func TestLoad_PublishesSnapshot(t *testing.T) {
	s := New(nil)
	report := s.Load(sourcesOf(eventsOf(3, "Home")))

	assert.False(t, report.Partial())
	assert.Equal(t, 3, report.Events)
	assert.Equal(t, 1, report.Players)
	assert.NotEmpty(t, report.SnapshotID)

	snap := s.Current()
	assert.True(t, snap.Loaded())
	assert.Equal(t, report.SnapshotID, snap.ID)
	assert.Equal(t, "abc", snap.Fingerprint)
	assert.Len(t, snap.Events(), 3)

	h := s.Health()
	assert.True(t, h.Loaded)
	assert.Equal(t, 3, h.Events)
	assert.Equal(t, 1, h.Teams)
	assert.Equal(t, 1, h.Matches)
}

func TestLoad_PartialFailureEmptiesCollection(t *testing.T) {
	s := New(nil)
	src := sourcesOf(eventsOf(2, "Home"))
	src.Teams = func() ([]model.TeamStat, error) { return nil, errors.New("team_stats.csv: permission denied") }
	src.Matches = nil

	report := s.Load(src)

	require.True(t, report.Partial())
	assert.Contains(t, report.Failures, "teams")
	assert.NotContains(t, report.Failures, "matches")
	assert.Equal(t, 2, report.Events)
	assert.Empty(t, s.Current().Teams())
	assert.Empty(t, s.Current().Matches())
	assert.Len(t, s.Current().Players(), 1)
}

func TestReloadIsolation(t *testing.T) {
	s := New(nil)
	s.Load(sourcesOf(eventsOf(4, "Home")))
	old := s.Current()

	s.Load(sourcesOf(eventsOf(7, "Away")))

	oldEvents := old.Events()
	require.Len(t, oldEvents, 4)
	for _, e := range oldEvents {
		assert.Equal(t, "Home", e.Team)
	}
	assert.Len(t, s.Current().Events(), 7)
	assert.NotEqual(t, old.ID, s.Current().ID)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := New(nil)
	events := eventsOf(2, "Home")
	s.Load(sourcesOf(events))

	// Mutating the loader's slice after Load must not leak in.
	events[0].Team = "Changed"

	got := s.Current().Events()
	got[1].Team = "Changed"
	teams := s.Current().Teams()
	teams[0].Fields["possession"] = 0.0
	matches := s.Current().Matches()
	matches[0].Teams[0] = "Changed"

	fresh := s.Current()
	assert.Equal(t, "Home", fresh.Events()[0].Team)
	assert.Equal(t, "Home", fresh.Events()[1].Team)
	assert.Equal(t, 55.0, fresh.Teams()[0].Fields["possession"])
	assert.Equal(t, "Home", fresh.Matches()[0].Teams[0])
}

func TestConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	s := New(nil)
	s.Load(sourcesOf(eventsOf(10, "Home")))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan string, 8)

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				evs := s.Current().Events()
				if len(evs) == 0 {
					continue
				}
				team := evs[0].Team
				want := 10
				if team == "Away" {
					want = 20
				}
				if len(evs) != want {
					errs <- "mixed snapshot observed"
					return
				}
				for _, e := range evs {
					if e.Team != team {
						errs <- "mixed teams in one snapshot"
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			s.Load(sourcesOf(eventsOf(20, "Away")))
		} else {
			s.Load(sourcesOf(eventsOf(10, "Home")))
		}
	}
	close(stop)
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func TestLoad_SnapshotOwnsNestedData(t *testing.T) {
	s := New(nil)
	sec := 30
	teams := []model.TeamStat{{MatchID: 1, Team: "Home", Fields: map[string]any{"pass_accuracy": 80.0}}}
	events := []model.Event{{MatchID: 1, Minute: 3, Second: &sec}}
	matches := []model.MatchSummary{{MatchID: 1, Teams: []string{"Home", "Away"}}}
	s.Load(Sources{
		Teams:   func() ([]model.TeamStat, error) { return teams, nil },
		Events:  func() ([]model.Event, error) { return events, nil },
		Matches: func() ([]model.MatchSummary, error) { return matches, nil },
	})

	// The loader keeps and mutates its rows after Load.
	teams[0].Fields["pass_accuracy"] = 1.0
	sec = 59
	matches[0].Teams[0] = "Changed"

	snap := s.Current()
	assert.Equal(t, 80.0, snap.Teams()[0].Fields["pass_accuracy"])
	require.NotNil(t, snap.Events()[0].Second)
	assert.Equal(t, 30, *snap.Events()[0].Second)
	assert.Equal(t, "Home", snap.Matches()[0].Teams[0])
}
