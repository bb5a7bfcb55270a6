package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pable/go-match-analytics/internal/metrics"
	"github.com/pable/go-match-analytics/internal/model"
)

// Sources supplies the four collections of a snapshot. A nil loader
// yields an empty collection.
type Sources struct {
	Players func() ([]model.PlayerStat, error)
	Teams   func() ([]model.TeamStat, error)
	Events  func() ([]model.Event, error)
	Matches func() ([]model.MatchSummary, error)

	// Fingerprint identifies the source content, e.g. a hash of the files.
	Fingerprint string
}

// LoadReport describes one Load call.
type LoadReport struct {
	SnapshotID string
	LoadedAt   time.Time
	Duration   time.Duration
	Players    int
	Teams      int
	Events     int
	Matches    int
	// Failures maps a collection name to the error that emptied it.
	Failures map[string]error
}

// Partial reports whether any collection failed to load.
func (r LoadReport) Partial() bool { return len(r.Failures) > 0 }

// Health is the status summary of the store.
type Health struct {
	Loaded     bool      `json:"loaded"`
	LoadedAt   time.Time `json:"loaded_at"`
	SnapshotID string    `json:"snapshot_id"`
	Players    int       `json:"players"`
	Teams      int       `json:"teams"`
	Events     int       `json:"events"`
	Matches    int       `json:"matches"`
}

// Store publishes snapshots. Readers never lock; loads are serialized.
type Store struct {
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex
	log     *logrus.Entry
}

// New returns an unloaded Store. A nil log uses the logrus standard logger.
func New(log *logrus.Entry) *Store {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Store{log: log}
	s.current.Store(emptySnapshot)
	return s
}

// Current returns the published snapshot. Before the first Load it is an
// empty snapshot, never nil.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Load builds a new snapshot from src and publishes it in one swap. A
// failing loader empties its collection and is recorded in the report;
// Load itself never fails.
func (s *Store) Load(src Sources) LoadReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	failures := make(map[string]error)

	snap := &Snapshot{
		ID:          uuid.NewString(),
		Fingerprint: src.Fingerprint,
	}
	snap.players = loadCollection(s, metrics.CollectionPlayers, src.Players, cloneSlice[model.PlayerStat], failures)
	snap.teams = loadCollection(s, metrics.CollectionTeams, src.Teams, copyTeams, failures)
	snap.events = loadCollection(s, metrics.CollectionEvents, src.Events, copyEvents, failures)
	snap.matches = loadCollection(s, metrics.CollectionMatches, src.Matches, copyMatches, failures)
	snap.LoadedAt = time.Now()

	s.current.Store(snap)

	elapsed := time.Since(start)
	metrics.SnapshotLoads.Inc()
	metrics.SnapshotLoadDuration.Observe(float64(elapsed.Milliseconds()))
	metrics.SnapshotRecords.WithLabelValues(metrics.CollectionPlayers).Set(float64(len(snap.players)))
	metrics.SnapshotRecords.WithLabelValues(metrics.CollectionTeams).Set(float64(len(snap.teams)))
	metrics.SnapshotRecords.WithLabelValues(metrics.CollectionEvents).Set(float64(len(snap.events)))
	metrics.SnapshotRecords.WithLabelValues(metrics.CollectionMatches).Set(float64(len(snap.matches)))

	s.log.WithFields(logrus.Fields{
		"snapshot": snap.ID,
		"players":  len(snap.players),
		"teams":    len(snap.teams),
		"events":   len(snap.events),
		"matches":  len(snap.matches),
		"failed":   len(failures),
		"took":     elapsed,
	}).Info("snapshot published")

	return LoadReport{
		SnapshotID: snap.ID,
		LoadedAt:   snap.LoadedAt,
		Duration:   elapsed,
		Players:    len(snap.players),
		Teams:      len(snap.teams),
		Events:     len(snap.events),
		Matches:    len(snap.matches),
		Failures:   failures,
	}
}

func loadCollection[T any](s *Store, name string, fn func() ([]T, error), own func([]T) []T, failures map[string]error) []T {
	if fn == nil {
		return nil
	}
	items, err := fn()
	if err != nil {
		failures[name] = err
		metrics.SnapshotPartialFailures.WithLabelValues(name).Inc()
		s.log.WithError(err).WithField("collection", name).Warn("collection failed to load, using empty")
		return nil
	}
	// The loader may keep its rows; the snapshot owns a deep copy.
	return own(items)
}

// Health summarizes the published snapshot.
func (s *Store) Health() Health {
	snap := s.Current()
	players, teams, events, matches := snap.Counts()
	return Health{
		Loaded:     snap.Loaded(),
		LoadedAt:   snap.LoadedAt,
		SnapshotID: snap.ID,
		Players:    players,
		Teams:      teams,
		Events:     events,
		Matches:    matches,
	}
}
