package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-match-analytics/internal/metrics"
)

func TestQueriesCountPerView(t *testing.T) {
	before := testutil.ToFloat64(metrics.Queries.WithLabelValues("overview"))
	metrics.Queries.WithLabelValues("overview").Inc()
	metrics.Queries.WithLabelValues("overview").Inc()
	assert.Equal(t, before+2, testutil.ToFloat64(metrics.Queries.WithLabelValues("overview")))
}

func TestSnapshotRecordsGauge(t *testing.T) {
	metrics.SnapshotRecords.WithLabelValues(metrics.CollectionEvents).Set(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(metrics.SnapshotRecords.WithLabelValues(metrics.CollectionEvents)))

	metrics.SnapshotRecords.WithLabelValues(metrics.CollectionEvents).Set(0)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SnapshotRecords.WithLabelValues(metrics.CollectionEvents)))
}

func TestCollectorsRegistered(t *testing.T) {
	metrics.SnapshotLoads.Inc()
	metrics.SnapshotLoadDuration.Observe(3)
	metrics.SnapshotPartialFailures.WithLabelValues(metrics.CollectionTeams).Inc()
	metrics.WatchReloads.WithLabelValues("events_clean.csv").Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"matchstats_snapshot_loads_total",
		"matchstats_snapshot_partial_failures_total",
		"matchstats_snapshot_records",
		"matchstats_snapshot_load_duration_ms",
		"matchstats_queries_total",
		"matchstats_watch_reloads_total",
	} {
		assert.True(t, names[want], "missing %s", want)
	}
}
