package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "linkcheck"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry     *prom.Registry
	filesChecked prom.Counter
	links        *prom.CounterVec
	findings     *prom.CounterVec
	runDuration  prom.Gauge
}

// NewPrometheusRecorder constructs and registers the link check metrics on reg.
// A fresh registry is created when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		filesChecked: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_checked_total",
			Help:      "Markdown files processed",
		}),
		links: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_total",
			Help:      "Links extracted, by classification",
		}, []string{"class"}),
		findings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "findings_total",
			Help:      "Validation errors reported, by kind",
		}, []string{"kind"}),
		runDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last link check run",
		}),
	}
	reg.MustRegister(pr.filesChecked, pr.links, pr.findings, pr.runDuration)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) IncFilesChecked() {
	if p == nil {
		return
	}
	p.filesChecked.Inc()
}

func (p *PrometheusRecorder) IncLink(class string) {
	if p == nil {
		return
	}
	p.links.WithLabelValues(class).Inc()
}

func (p *PrometheusRecorder) IncFinding(kind string) {
	if p == nil {
		return
	}
	p.findings.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Set(d.Seconds())
}

// WriteTextfile writes the current metric values to path in the Prometheus
// text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
