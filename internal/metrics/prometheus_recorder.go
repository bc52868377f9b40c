package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	loads          *prom.CounterVec
	loadDuration   prom.Histogram
	renders        *prom.CounterVec
	renderDuration *prom.HistogramVec
	issues         *prom.GaugeVec
	reloads        prom.Counter
}

// NewPrometheusRecorder constructs and registers the metrics on reg. A nil
// registry gets a private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		loads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "config_loads_total",
			Help:      "Configuration loads by result",
		}, []string{"result"}),
		loadDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "config_load_duration_seconds",
			Help:      "Duration of configuration load and validation",
			Buckets:   prom.DefBuckets,
		}),
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Render attempts by target and result",
		}, []string{"target", "result"}),
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of render target execution",
			Buckets:   prom.DefBuckets,
		}, []string{"target"}),
		issues: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "config_issues",
			Help:      "Issues found by the last configuration check",
		}, []string{"severity"}),
		reloads: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "config_reloads_total",
			Help:      "Configuration changes picked up by the watcher",
		}),
	}
	reg.MustRegister(pr.loads, pr.loadDuration, pr.renders, pr.renderDuration, pr.issues, pr.reloads)
	return pr
}

func (p *PrometheusRecorder) ObserveLoad(result ResultLabel, d time.Duration) {
	if p == nil {
		return
	}
	p.loads.WithLabelValues(string(result)).Inc()
	p.loadDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRender(target string, result ResultLabel, d time.Duration) {
	if p == nil {
		return
	}
	p.renders.WithLabelValues(target, string(result)).Inc()
	if result != ResultSkipped {
		p.renderDuration.WithLabelValues(target).Observe(d.Seconds())
	}
}

func (p *PrometheusRecorder) SetIssues(errors, warnings int) {
	if p == nil {
		return
	}
	p.issues.WithLabelValues("error").Set(float64(errors))
	p.issues.WithLabelValues("warning").Set(float64(warnings))
}

func (p *PrometheusRecorder) IncReload() {
	if p == nil {
		return
	}
	p.reloads.Inc()
}
