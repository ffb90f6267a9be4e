// Package metrics exposes pipeline activity as Prometheus metrics.
//
// A Metrics value owns its own registry rather than using the global one, so
// several pipelines (or tests) in one process do not collide.
package metrics

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/specialistvlad/stagegrid/internal/graph"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/scene"
)

const namespace = "stagegrid"

// Metrics collects tick and node counters. It implements graph.Observer.
type Metrics struct {
	registry *prometheus.Registry

	ticksTotal   prometheus.Counter
	tickDuration prometheus.Histogram
	tickFailures prometheus.Counter
	nodeResults  *prometheus.CounterVec
	nodeDuration *prometheus.HistogramVec

	mu      sync.Mutex
	tracked *scene.Store
}

// ErrSceneTracked is returned when TrackScene is given a second, different
// store.
var ErrSceneTracked = errors.New("another scene store is already tracked")

var _ graph.Observer = (*Metrics)(nil)

// New creates the metric set and registers it, together with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Number of completed pipeline ticks.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time of a full pipeline tick.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .016, .033, .05, .1, .25, .5, 1},
		}),
		tickFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_with_failures_total",
			Help:      "Number of ticks in which at least one node failed.",
		}),
		nodeResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_results_total",
			Help:      "Node outcomes per tick by node type and status.",
		}, []string{"type", "status"}),
		nodeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "node_process_duration_seconds",
			Help:      "Time spent in a node's Process call.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"type"}),
	}

	m.registry.MustRegister(
		m.ticksTotal,
		m.tickDuration,
		m.tickFailures,
		m.nodeResults,
		m.nodeDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// TrackScene registers gauges that read the store's counts at scrape time.
// Tracking the same store again is a no-op.
func (m *Metrics) TrackScene(store *scene.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tracked == store {
		return nil
	}
	if m.tracked != nil {
		return ErrSceneTracked
	}

	gauge := func(name, help string, value func(scene.Stats) int) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scene",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(value(store.Stats())) })
	}

	for _, c := range []prometheus.Collector{
		gauge("entities", "Entities in the scene store.", func(s scene.Stats) int { return s.Entities }),
		gauge("meshes", "Meshes in the scene store.", func(s scene.Stats) int { return s.Meshes }),
		gauge("relations", "Relations in the scene store.", func(s scene.Stats) int { return s.Relations }),
	} {
		if err := m.registry.Register(c); err != nil {
			return err
		}
	}
	m.tracked = store
	return nil
}

// NodeProcessed records one node outcome.
func (m *Metrics) NodeProcessed(typeName string, status node.Status, d time.Duration) {
	m.nodeResults.WithLabelValues(typeName, status.String()).Inc()
	if status == node.StatusCompleted || status == node.StatusFailed {
		m.nodeDuration.WithLabelValues(typeName).Observe(d.Seconds())
	}
}

// TickCompleted records a finished tick.
func (m *Metrics) TickCompleted(report *graph.TickReport) {
	m.ticksTotal.Inc()
	m.tickDuration.Observe(report.Duration.Seconds())
	if len(report.Failed()) > 0 {
		m.tickFailures.Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
