// Package metrics implements the observability hooks with Prometheus
// collectors. The serve command creates one Hooks value, installs it with
// Register, and mounts Handler on /metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tetraptych/etymoscope-kiro/pkg/observability"
)

const namespace = "etymoscope"

// Hooks translates engine, cache, and upstream HTTP events into Prometheus
// metrics. Each instance owns its own registry, so tests never collide.
type Hooks struct {
	registry *prometheus.Registry

	graphInflight prometheus.Gauge
	graphBuilds   *prometheus.CounterVec
	graphDuration prometheus.Histogram
	graphNodes    prometheus.Histogram
	prunedNodes   prometheus.Counter

	lookups *prometheus.CounterVec
	samples *prometheus.CounterVec

	tableRebuilds *prometheus.CounterVec
	tableWords    prometheus.Gauge

	cacheOps   *prometheus.CounterVec
	cacheBytes *prometheus.CounterVec

	upstreamRequests *prometheus.CounterVec
	upstreamStatus   *prometheus.CounterVec
	upstreamErrors   *prometheus.CounterVec
	upstreamDuration prometheus.Histogram
}

// New creates Hooks backed by a fresh registry.
func New() *Hooks {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Hooks{
		registry: reg,
		graphInflight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_builds_inflight",
			Help:      "Graph builds currently running.",
		}),
		graphBuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_builds_total",
			Help:      "Completed graph builds by outcome.",
		}, []string{"outcome"}),
		graphDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_build_duration_seconds",
			Help:      "Wall time to build and prune one graph.",
			Buckets:   prometheus.DefBuckets,
		}),
		graphNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Node count of served graphs.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		prunedNodes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pruned_nodes_total",
			Help:      "Nodes removed by hub pruning.",
		}),
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Dictionary lookups by result.",
		}, []string{"result"}),
		samples: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Random word draws by source.",
		}, []string{"source"}),
		tableRebuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_rebuilds_total",
			Help:      "Sampling table rebuilds by outcome.",
		}, []string{"outcome"}),
		tableWords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_words",
			Help:      "Entries in the installed sampling table.",
		}),
		cacheOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_ops_total",
			Help:      "Cache operations by op and artifact type.",
		}, []string{"op", "type"}),
		cacheBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by artifact type.",
		}, []string{"type"}),
		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Outgoing dataset requests by method and host.",
		}, []string{"method", "host"}),
		upstreamStatus: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_responses_total",
			Help:      "Upstream responses by status class.",
		}, []string{"class"}),
		upstreamErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Upstream transport failures by method and host.",
		}, []string{"method", "host"}),
		upstreamDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request round-trip time.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Register installs h as the process-wide hook implementation for engine,
// cache, and HTTP events.
func (h *Hooks) Register() {
	observability.SetEngineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

// Handler serves the registry in the Prometheus text format.
func (h *Hooks) Handler() http.Handler {
	return promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})
}

func (h *Hooks) OnGraphStart(context.Context, string, int) {
	h.graphInflight.Inc()
}

func (h *Hooks) OnGraphComplete(_ context.Context, _ string, _, nodeCount, prunedCount int, duration time.Duration, err error) {
	h.graphInflight.Dec()
	h.graphBuilds.WithLabelValues(outcome(err)).Inc()
	h.graphDuration.Observe(duration.Seconds())
	h.graphNodes.Observe(float64(nodeCount))
	h.prunedNodes.Add(float64(prunedCount))
}

func (h *Hooks) OnLookup(_ context.Context, found bool) {
	result := "missing"
	if found {
		result = "found"
	}
	h.lookups.WithLabelValues(result).Inc()
}

func (h *Hooks) OnSample(_ context.Context, fromTable bool) {
	source := "fallback"
	if fromTable {
		source = "table"
	}
	h.samples.WithLabelValues(source).Inc()
}

func (h *Hooks) OnTableRebuild(_ context.Context, wordCount int, _ time.Duration, err error) {
	h.tableRebuilds.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		h.tableWords.Set(float64(wordCount))
	}
}

func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues("hit", keyType).Inc()
}

func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues("miss", keyType).Inc()
}

func (h *Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheOps.WithLabelValues("set", keyType).Inc()
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (h *Hooks) OnRequest(_ context.Context, method, host, _ string) {
	h.upstreamRequests.WithLabelValues(method, host).Inc()
}

func (h *Hooks) OnResponse(_ context.Context, _, _, _ string, statusCode int, duration time.Duration) {
	h.upstreamStatus.WithLabelValues(statusClass(statusCode)).Inc()
	h.upstreamDuration.Observe(duration.Seconds())
}

func (h *Hooks) OnError(_ context.Context, method, host, _ string, _ error) {
	h.upstreamErrors.WithLabelValues(method, host).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// statusClass collapses a status code to its class ("2xx") to keep label
// cardinality flat.
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

var (
	_ observability.EngineHooks = (*Hooks)(nil)
	_ observability.CacheHooks  = (*Hooks)(nil)
	_ observability.HTTPHooks   = (*Hooks)(nil)
)
