package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-match-analytics/internal/config"
	"github.com/pable/go-match-analytics/internal/ingest"
	"github.com/pable/go-match-analytics/internal/metrics"
	"github.com/pable/go-match-analytics/internal/store"
)

const header = "match_id,minute,player,team,event_type,event_category,x,y,zone_3x3,is_successful\n"

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func setup(t *testing.T) (*Reloader, *store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "player_stats.csv"), "match_id,player,team\n1,John Smith,Home\n")
	writeFile(t, filepath.Join(dir, "team_stats.csv"), "match_id,team\n1,Home\n")
	writeFile(t, filepath.Join(dir, "events_clean.csv"), header+"1,3,John Smith,Home,Pass,Pass,10,10,R1C1,true\n")
	writeFile(t, filepath.Join(dir, "match_summary.json"), `{"match_id": 1}`)

	cfg := config.New()
	cfg.DataDir = dir
	st := store.New(nil)
	r := New(st, ingest.PathsFrom(cfg), nil)
	r.SetDebounce(20 * time.Millisecond)
	return r, st, dir
}

func TestReload_InvokesCallbacks(t *testing.T) {
	r, st, _ := setup(t)
	var calls atomic.Int32
	r.OnReload(func(rep store.LoadReport) {
		calls.Add(1)
		assert.False(t, rep.Partial())
	})

	rep := r.Reload()
	assert.Equal(t, 1, rep.Events)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, rep.SnapshotID, st.Current().ID)
}

func TestReloadIfChanged_SkipsIdenticalFiles(t *testing.T) {
	r, st, _ := setup(t)
	r.Reload()
	id := st.Current().ID

	assert.False(t, r.reloadIfChanged())
	assert.Equal(t, id, st.Current().ID)
}

func TestFlush_CountsOnlyPublishedReloads(t *testing.T) {
	r, st, dir := setup(t)
	r.Reload()
	id := st.Current().ID
	reloads := metrics.WatchReloads.WithLabelValues("team_stats.csv")
	before := testutil.ToFloat64(reloads)

	// Unchanged content: no snapshot, no count.
	pending := map[string]bool{"team_stats.csv": true}
	r.flush(pending)
	assert.Empty(t, pending)
	assert.Equal(t, id, st.Current().ID)
	assert.Equal(t, before, testutil.ToFloat64(reloads))

	writeFile(t, filepath.Join(dir, "team_stats.csv"), "match_id,team\n1,Home\n1,Away\n")
	r.flush(map[string]bool{"team_stats.csv": true})
	assert.NotEqual(t, id, st.Current().ID)
	assert.Equal(t, before+1, testutil.ToFloat64(reloads))
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	r, st, dir := setup(t)
	r.Reload()
	require.Len(t, st.Current().Events(), 1)

	stop, err := r.Watch()
	require.NoError(t, err)
	defer stop()

	writeFile(t, filepath.Join(dir, "events_clean.csv"),
		header+"1,3,John Smith,Home,Pass,Pass,10,10,R1C1,true\n1,8,John Smith,Home,Shot,Shot,90,50,R2C3,false\n")

	require.Eventually(t, func() bool {
		return len(st.Current().Events()) == 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatch_IgnoresUnrelatedFiles(t *testing.T) {
	r, st, dir := setup(t)
	r.Reload()
	id := st.Current().ID

	stop, err := r.Watch()
	require.NoError(t, err)
	defer stop()

	writeFile(t, filepath.Join(dir, "notes.txt"), "scratch")
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, id, st.Current().ID)
}

func TestWatch_StopIsIdempotent(t *testing.T) {
	r, _, _ := setup(t)
	stop, err := r.Watch()
	require.NoError(t, err)
	stop()
	stop()
}

func TestWatch_MissingDirectory(t *testing.T) {
	cfg := config.New()
	cfg.DataDir = filepath.Join(t.TempDir(), "absent")
	r := New(store.New(nil), ingest.PathsFrom(cfg), nil)
	_, err := r.Watch()
	assert.Error(t, err)
}
