package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/analytics"
	"github.com/pable/go-match-analytics/internal/filter"
	"github.com/pable/go-match-analytics/internal/logging"
	"github.com/pable/go-match-analytics/internal/report"
	"github.com/pable/go-match-analytics/internal/store"
	"github.com/pable/go-match-analytics/internal/watch"
)

var (
	watchDebounce time.Duration
	watchMetrics  string
	watchQuiet    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the snapshot whenever a source file changes",
	Long: `Load the source files, then watch the data directory and publish a new
snapshot whenever one of them is written, replaced or removed. After each
reload the match overview is printed unless --quiet is set.

With --metrics-addr (or metrics_addr) Prometheus metrics are served on /metrics.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before reloading")
	watchCmd.Flags().StringVar(&watchMetrics, "metrics-addr", "", "serve /metrics on this address, e.g. :9090")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "do not print the overview after reloads")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engine, paths := openEngine()
	wlog := logging.WithComponent(log, "watch")

	r := watch.New(engine.Store(), paths, wlog)
	r.SetDebounce(watchDebounce)
	r.OnReload(func(rep store.LoadReport) {
		report.PrintLoadReport(os.Stdout, rep)
		if !watchQuiet {
			printOverview(engine)
		}
	})

	stop, err := r.Watch()
	if err != nil {
		return err
	}
	defer stop()

	addr := watchMetrics
	if addr == "" {
		addr = cfg.MetricsAddr
	}
	if addr != "" {
		srv := &http.Server{Addr: addr, Handler: metricsMux(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				wlog.WithError(err).Error("metrics server stopped")
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
		wlog.WithField("addr", addr).Info("serving /metrics")
	}

	if !watchQuiet {
		printOverview(engine)
	}
	wlog.WithFields(logrus.Fields{
		"dir":      cfg.DataDir,
		"debounce": watchDebounce,
	}).Info("watching source files")
	fmt.Fprintln(os.Stdout, "Watching for changes, Ctrl-C to stop.")

	<-ctx.Done()
	return nil
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func printOverview(engine *analytics.Engine) {
	fmt.Fprintln(os.Stdout)
	report.PrintOverview(os.Stdout, engine.Overview(filter.Criteria{}))
}
