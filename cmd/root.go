package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/analytics"
	"github.com/pable/go-match-analytics/internal/config"
	"github.com/pable/go-match-analytics/internal/ingest"
	"github.com/pable/go-match-analytics/internal/logging"
	"github.com/pable/go-match-analytics/internal/store"
)

var (
	configPath string
	dataDir    string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "matchstats",
	Short: "Soccer match analytics",
	Long: `Load one match's event and summary files and compute KPIs, timelines,
zone counts, heatmaps and player radars.

Source files are read from the data directory (--data, default ./data):
  player_stats.csv, team_stats.csv, events_clean.csv, match_summary.json`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (default $MATCHSTATS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "directory holding the source files (overrides data_dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides log_level)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "text or json (overrides log_format)")
}

// setup layers flags over the loaded config and initialises logging.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if logFormat != "" {
		c.LogFormat = logFormat
	}
	cfg = c
	log = logging.Init(cfg.LogLevel, cfg.LogFormat)
	log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"data":    cfg.DataDir,
	}).Debug("config loaded")
	return nil
}

// openEngine loads a snapshot from the data directory and returns an
// engine over it. Collections that fail to load are logged and left empty.
func openEngine() (*analytics.Engine, ingest.Paths) {
	paths := ingest.PathsFrom(cfg)
	st := store.New(logging.WithComponent(log, "store"))
	engine := analytics.New(st, analytics.OptionsFrom(cfg))
	engine.LoadSnapshot(ingest.DirSource(paths))
	return engine, paths
}
