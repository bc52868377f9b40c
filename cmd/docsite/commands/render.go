package commands

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/render"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Target  []string `short:"t" help:"Targets to render (${targets})" default:"astro" sep:","`
	Out     string   `short:"o" help:"Output directory" default:"." type:"path"`
	Variant string   `help:"Render the configuration derived for this variant"`
	Force   bool     `short:"f" help:"Render even when the output is up to date"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	targets, err := lookupTargets(r.Target)
	if err != nil {
		return err
	}
	cfg, err := resolve(root.Config, r.Variant)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return renderTargets(ctx, g.Out, metrics.NoopRecorder{}, cfg, targets, r.Out, r.Force)
}

func lookupTargets(names []string) ([]render.Target, error) {
	targets := make([]render.Target, 0, len(names))
	for _, name := range names {
		t, err := render.Lookup(name)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// renderTargets writes every target and reports one line per file. The first
// failure stops the run.
func renderTargets(ctx context.Context, w io.Writer, rec metrics.Recorder, cfg *site.Config, targets []render.Target, dir string, force bool) error {
	for _, t := range targets {
		start := time.Now()
		res, err := render.Write(ctx, dir, t, cfg, force)
		if err != nil {
			rec.ObserveRender(t.Name(), metrics.ResultFailed, time.Since(start))
			return err
		}
		if res.Skipped {
			rec.ObserveRender(t.Name(), metrics.ResultSkipped, time.Since(start))
			_, _ = fmt.Fprintf(w, "%s %s\n", faint("unchanged"), res.Path)
			continue
		}
		rec.ObserveRender(t.Name(), metrics.ResultSuccess, time.Since(start))
		_, _ = successPrinter.Fprint(w, "wrote")
		_, _ = fmt.Fprintf(w, "     %s\n", res.Path)
	}
	return nil
}
