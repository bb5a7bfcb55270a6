package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pable/go-match-analytics/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load("")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "data")
				convey.So(cfg.EventsFile, convey.ShouldEqual, "events_clean.csv")
				convey.So(cfg.RadarRecoveries, convey.ShouldEqual, 7)
				convey.So(cfg.RadarTouches, convey.ShouldEqual, 1.5)
				convey.So(cfg.HeatmapFull, convey.ShouldEqual, 10)
				convey.So(cfg.HeatmapPlayer, convey.ShouldEqual, 8)
				convey.So(cfg.HeatmapCompact, convey.ShouldEqual, 6)
				convey.So(cfg.TimelineWidth, convey.ShouldEqual, 5)
				convey.So(cfg.CompactBaseline.TotalTouches, convey.ShouldEqual, 30)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MATCHSTATS_DATA_DIR", "/srv/matches")
			_ = os.Setenv("MATCHSTATS_TIMELINE_WIDTH", "15")
			_ = os.Setenv("MATCHSTATS_RADAR_TOUCHES", "2")
			_ = os.Setenv("MATCHSTATS_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load("")

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/matches")
				convey.So(cfg.TimelineWidth, convey.ShouldEqual, 15)
				convey.So(cfg.RadarTouches, convey.ShouldEqual, 2)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.HeatmapFull, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()
			path := writeConfigFile(t, `
data_dir: fixtures
heatmap_player: 12
metrics_addr: ":9090"
compact_baseline:
  pass_accuracy: 70
  total_touches: 40
`)

			cfg, err := config.Load(path)

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "fixtures")
				convey.So(cfg.HeatmapPlayer, convey.ShouldEqual, 12)
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9090")
				convey.So(cfg.CompactBaseline.PassAccuracy, convey.ShouldEqual, 70)
				convey.So(cfg.CompactBaseline.TotalTouches, convey.ShouldEqual, 40)
				convey.So(cfg.CompactBaseline.DuelSuccessRate, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When the config path comes from MATCHSTATS_CONFIG and env overrides it", func() {
			path := writeConfigFile(t, "data_dir: from-file\ntimeline_width: 10\n")
			_ = os.Setenv("MATCHSTATS_CONFIG", path)
			_ = os.Setenv("MATCHSTATS_TIMELINE_WIDTH", "3")
			defer clearConfigEnvVars()

			cfg, err := config.Load("")

			convey.Convey("Then env takes precedence over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "from-file")
				convey.So(cfg.TimelineWidth, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars()

			_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a grid size is invalid", func() {
			_ = os.Setenv("MATCHSTATS_HEATMAP_COMPACT", "0")
			defer clearConfigEnvVars()

			_, err := config.Load("")

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	convey.Convey("Given default config", t, func() {
		cfg := config.New()

		convey.Convey("It validates", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("A negative radar coefficient is rejected", func() {
			cfg.RadarRecoveries = -1
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("An empty data dir is rejected", func() {
			cfg.DataDir = ""
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("Coefficients mirror the radar fields", func() {
			c := cfg.Coefficients()
			convey.So(c.Recoveries, convey.ShouldEqual, 7)
			convey.So(c.Touches, convey.ShouldEqual, 1.5)
		})
	})
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matchstats.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"MATCHSTATS_CONFIG",
		"MATCHSTATS_DATA_DIR",
		"MATCHSTATS_TIMELINE_WIDTH",
		"MATCHSTATS_RADAR_TOUCHES",
		"MATCHSTATS_LOG_FORMAT",
		"MATCHSTATS_HEATMAP_COMPACT",
	} {
		_ = os.Unsetenv(key)
	}
}
