package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/site"
	"git.home.luguber.info/inful/docsite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Target      []string      `short:"t" help:"Targets to render (${targets})" default:"astro" sep:","`
	Out         string        `short:"o" help:"Output directory" default:"." type:"path"`
	Variant     string        `help:"Render the configuration derived for this variant"`
	Debounce    time.Duration `help:"Quiet period before re-rendering" default:"300ms"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9090)" placeholder:"ADDR"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	targets, err := lookupTargets(w.Target)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if w.MetricsAddr != "" {
		reg := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
		stop := serveMetrics(w.MetricsAddr, reg)
		defer stop()
	}

	rebuild := func(ctx context.Context) error {
		cfg, err := loadObserved(rec, root.Config, w.Variant)
		if err != nil {
			return err
		}
		return renderTargets(ctx, g.Out, rec, cfg, targets, w.Out, false)
	}

	if err := rebuild(ctx); err != nil {
		g.Logger.Error("Initial render failed; waiting for changes", logfields.Path(root.Config), logfields.Error(err))
	}

	watcher, err := watch.New(root.Config, w.Debounce, func(ctx context.Context) error {
		rec.IncReload()
		return rebuild(ctx)
	})
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "failed to start watcher").Build()
	}
	return watcher.Run(ctx)
}

// loadObserved resolves the configuration and records the outcome along
// with the issue counts of the load report.
func loadObserved(rec metrics.Recorder, path, variant string) (*site.Config, error) {
	start := time.Now()
	f, report, err := loadWithReport(path)
	if report != nil {
		rec.SetIssues(len(report.Issues.Errors()), len(report.Issues.Warnings()))
	}
	var cfg *site.Config
	if err == nil {
		cfg, err = f.Resolve(variant)
	}
	d := time.Since(start)
	switch {
	case err == nil:
		rec.ObserveLoad(metrics.ResultSuccess, d)
	case derrors.HasCategory(err, derrors.CategoryValidation):
		rec.ObserveLoad(metrics.ResultInvalid, d)
	default:
		rec.ObserveLoad(metrics.ResultFailed, d)
	}
	return cfg, err
}

func serveMetrics(addr string, reg *prom.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		slog.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
