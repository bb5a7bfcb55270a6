package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collection labels.
const (
	CollectionPlayers = "players"
	CollectionTeams   = "teams"
	CollectionEvents  = "events"
	CollectionMatches = "matches"
)

var (
	SnapshotLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchstats_snapshot_loads_total",
		Help: "Total number of snapshots published by the record store.",
	})

	SnapshotPartialFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchstats_snapshot_partial_failures_total",
		Help: "Source collections that failed to load and were replaced by an empty collection.",
	}, []string{"collection"})

	SnapshotRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "matchstats_snapshot_records",
		Help: "Number of records per collection in the active snapshot.",
	}, []string{"collection"})

	SnapshotLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matchstats_snapshot_load_duration_ms",
		Help:    "Time to build and publish a snapshot in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	Queries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchstats_queries_total",
		Help: "Engine queries served, labelled by view.",
	}, []string{"view"})

	WatchReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchstats_watch_reloads_total",
		Help: "Snapshots published by the data directory watcher, labelled by changed file.",
	}, []string{"file"})
)
