// Package metrics records selection statistics in a private Prometheus registry.
package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/zerr"
)

const namespace = "impact"

// Recorder implements ports.Metrics.
type Recorder struct {
	registry *prometheus.Registry

	selections  prometheus.Counter
	fallbacks   prometheus.Counter
	files       prometheus.Gauge
	modules     *prometheus.CounterVec
	edges       prometheus.Gauge
	tests       prometheus.Gauge
	changed     prometheus.Gauge
	selected    prometheus.Gauge
	diagnostics prometheus.Counter
	duration    prometheus.Histogram
}

// NewRecorder creates a Recorder with its own registry, so that repeated
// construction in tests never collides with global collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		selections: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Number of selections performed.",
		}),
		fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_selections_total",
			Help:      "Number of selections that selected every test.",
		}),
		files: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_files",
			Help:      "Files catalogued by the last selection.",
		}),
		modules: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "modules_total",
			Help:      "Modules processed by the graph builder, by outcome.",
		}, []string{"outcome"}),
		edges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Dependency edges in the last graph.",
		}),
		tests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_tests",
			Help:      "Test modules in the last graph.",
		}),
		changed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "changed_paths",
			Help:      "Changed paths passed to the last selection.",
		}),
		selected: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selected_tests",
			Help:      "Tests selected by the last selection.",
		}),
		diagnostics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "User-facing diagnostics reported.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "selection_duration_seconds",
			Help:      "Wall time of a selection.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
	}
}

// Registry returns the registry the recorder writes to.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records the statistics of one selection.
func (r *Recorder) Observe(stats domain.SelectionStats) {
	r.selections.Inc()
	if stats.Fallback {
		r.fallbacks.Inc()
	}

	b := stats.Build
	r.files.Set(float64(b.Files))
	r.modules.WithLabelValues("parsed").Add(float64(b.Parsed))
	r.modules.WithLabelValues("reused").Add(float64(b.Reused))
	r.modules.WithLabelValues("reresolved").Add(float64(b.Reresolved))
	r.modules.WithLabelValues("degraded").Add(float64(b.Degraded))
	r.edges.Set(float64(b.Edges))
	r.tests.Set(float64(b.Tests))

	r.changed.Set(float64(stats.Changed))
	r.selected.Set(float64(stats.Selected))
	r.diagnostics.Add(float64(stats.Diagnostics))
	r.duration.Observe(stats.Duration.Seconds())
}

// WriteFile writes the collected metrics to path in the text exposition
// format read by the node exporter's textfile collector.
func (r *Recorder) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create metrics directory"), "path", path)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metrics file"), "path", path)
	}
	return nil
}
