// Package ingest reads the four match source files into typed collections.
package ingest

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pable/go-match-analytics/internal/config"
	"github.com/pable/go-match-analytics/internal/model"
	"github.com/pable/go-match-analytics/internal/store"
)

// Paths locates the four source files.
type Paths struct {
	Players string
	Teams   string
	Events  string
	Summary string
}

// PathsFrom resolves the configured file names against the data directory.
func PathsFrom(cfg *config.Config) Paths {
	join := func(name string) string {
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(cfg.DataDir, name)
	}
	return Paths{
		Players: join(cfg.PlayersFile),
		Teams:   join(cfg.TeamsFile),
		Events:  join(cfg.EventsFile),
		Summary: join(cfg.SummaryFile),
	}
}

// All returns the paths in load order.
func (p Paths) All() []string {
	return []string{p.Players, p.Teams, p.Events, p.Summary}
}

// DirSource returns store sources that read each file on Load. Every
// collection fails independently.
func DirSource(p Paths) store.Sources {
	return store.Sources{
		Players: func() ([]model.PlayerStat, error) {
			return readFile(p.Players, ".csv", ReadPlayers)
		},
		Teams: func() ([]model.TeamStat, error) {
			return readFile(p.Teams, ".csv", ReadTeams)
		},
		Events: func() ([]model.Event, error) {
			return readFile(p.Events, ".csv", ReadEvents)
		},
		Matches: func() ([]model.MatchSummary, error) {
			return readFile(p.Summary, ".json", ReadSummaries)
		},
		Fingerprint: Fingerprint(p.All()...),
	}
}

func readFile[T any](path, ext string, read func(io.Reader) ([]T, error)) ([]T, error) {
	if !strings.EqualFold(filepath.Ext(path), ext) {
		return nil, fmt.Errorf("%w: %s (want %s)", ErrUnsupportedFormat, path, ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	items, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// Fingerprint hashes the content of the given files in order. Missing
// files contribute their name only, so the value still changes when a
// file appears or disappears.
func Fingerprint(paths ...string) string {
	h := sha256.New()
	for _, path := range paths {
		fmt.Fprintf(h, "%s\x00", filepath.Base(path))
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprint(h, "missing\x00")
			continue
		}
		_, _ = io.Copy(h, f)
		f.Close()
		fmt.Fprint(h, "\x00")
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
