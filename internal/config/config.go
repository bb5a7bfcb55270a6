// Package config defines process configuration and its layered loader.
package config

import (
	"fmt"

	"github.com/pable/go-match-analytics/internal/radar"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// DataDir holds the four source files of a snapshot.
	DataDir     string `koanf:"data_dir"`
	PlayersFile string `koanf:"players_file"`
	TeamsFile   string `koanf:"teams_file"`
	EventsFile  string `koanf:"events_file"`
	SummaryFile string `koanf:"summary_file"`

	// RadarRecoveries and RadarTouches are the radar scale coefficients.
	RadarRecoveries float64 `koanf:"radar_recoveries"`
	RadarTouches    float64 `koanf:"radar_touches"`

	// CompactBaseline is the reference profile for compact radars.
	CompactBaseline radar.Profile `koanf:"compact_baseline"`

	// Heatmap grid resolutions.
	HeatmapFull    int `koanf:"heatmap_full"`
	HeatmapPlayer  int `koanf:"heatmap_player"`
	HeatmapCompact int `koanf:"heatmap_compact"`

	// TimelineWidth is the default interval width in minutes.
	TimelineWidth int `koanf:"timeline_width"`

	// MetricsAddr, when set, serves /metrics while watching, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		DataDir:         "data",
		PlayersFile:     "player_stats.csv",
		TeamsFile:       "team_stats.csv",
		EventsFile:      "events_clean.csv",
		SummaryFile:     "match_summary.json",
		RadarRecoveries: 7,
		RadarTouches:    1.5,
		CompactBaseline: radar.CompactBaseline(),
		HeatmapFull:     10,
		HeatmapPlayer:   8,
		HeatmapCompact:  6,
		TimelineWidth:   5,
	}
}

// Coefficients returns the configured radar coefficients.
func (c *Config) Coefficients() radar.Coefficients {
	return radar.Coefficients{Recoveries: c.RadarRecoveries, Touches: c.RadarTouches}
}

// Validate checks ranges that would make the engine's views meaningless.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}
	for name, n := range map[string]int{
		"heatmap_full":    c.HeatmapFull,
		"heatmap_player":  c.HeatmapPlayer,
		"heatmap_compact": c.HeatmapCompact,
		"timeline_width":  c.TimelineWidth,
	} {
		if n < 1 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, name, n)
		}
	}
	if c.RadarRecoveries < 0 || c.RadarTouches < 0 {
		return fmt.Errorf("%w: radar coefficients must not be negative", ErrInvalidConfig)
	}
	return nil
}
