// Package watch reloads the record store when source files change.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/pable/go-match-analytics/internal/ingest"
	"github.com/pable/go-match-analytics/internal/metrics"
	"github.com/pable/go-match-analytics/internal/store"
)

// DefaultDebounce coalesces the burst of events an editor or copy emits.
const DefaultDebounce = 250 * time.Millisecond

// Reloader loads snapshots from a set of source files and watches them.
type Reloader struct {
	paths    ingest.Paths
	store    *store.Store
	log      *logrus.Entry
	debounce time.Duration

	mu       sync.Mutex
	onReload []func(store.LoadReport)
}

// New creates a Reloader for paths feeding st.
func New(st *store.Store, paths ingest.Paths, log *logrus.Entry) *Reloader {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Reloader{paths: paths, store: st, log: log, debounce: DefaultDebounce}
}

// SetDebounce changes the quiet period before a reload. d <= 0 reloads on
// every event.
func (r *Reloader) SetDebounce(d time.Duration) { r.debounce = d }

// OnReload registers a callback invoked after every published snapshot.
func (r *Reloader) OnReload(fn func(store.LoadReport)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onReload = append(r.onReload, fn)
}

// Reload forces an immediate load of every source file.
func (r *Reloader) Reload() store.LoadReport {
	report := r.store.Load(ingest.DirSource(r.paths))
	r.mu.Lock()
	callbacks := make([]func(store.LoadReport), len(r.onReload))
	copy(callbacks, r.onReload)
	r.mu.Unlock()
	for _, fn := range callbacks {
		fn(report)
	}
	return report
}

// reloadIfChanged skips the load when the files hash to the published
// snapshot's fingerprint. It reports whether a snapshot was published.
func (r *Reloader) reloadIfChanged() bool {
	if fp := ingest.Fingerprint(r.paths.All()...); fp == r.store.Current().Fingerprint {
		r.log.Debug("source files unchanged, skipping reload")
		return false
	}
	r.Reload()
	return true
}

// Watch starts a background goroutine that reloads the store when any
// source file is written, created, renamed or removed. The containing
// directories are watched so files replaced by rename are still seen.
// Call the returned stop function to clean up.
func (r *Reloader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("data watcher: %w", err)
	}

	watched := make(map[string]string) // cleaned path -> base name
	dirs := make(map[string]bool)
	for _, p := range r.paths.All() {
		clean := filepath.Clean(p)
		watched[clean] = filepath.Base(clean)
		dirs[filepath.Dir(clean)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("data watcher add %s: %w", dir, err)
		}
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		var (
			timer   *time.Timer
			fire    <-chan time.Time
			pending = make(map[string]bool)
		)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				name, tracked := watched[filepath.Clean(ev.Name)]
				if !tracked || (ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write)) {
					continue
				}
				pending[name] = true
				if r.debounce <= 0 {
					r.flush(pending)
					continue
				}
				if timer == nil {
					timer = time.NewTimer(r.debounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(r.debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				r.flush(pending)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				r.log.WithError(err).Warn("data watcher error")
			case <-done:
				if timer != nil {
					timer.Stop()
				}
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}

func (r *Reloader) flush(pending map[string]bool) {
	changed := make([]string, 0, len(pending))
	for name := range pending {
		r.log.WithField("file", name).Info("source file changed")
		changed = append(changed, name)
		delete(pending, name)
	}
	if !r.reloadIfChanged() {
		return
	}
	for _, name := range changed {
		metrics.WatchReloads.WithLabelValues(name).Inc()
	}
}
