package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks records load and cache events as Prometheus metrics.
type PrometheusHooks struct {
	loadsStarted  prometheus.Counter
	loadsTotal    *prometheus.CounterVec
	loadDuration  prometheus.Histogram
	nodesLoaded   prometheus.Counter
	relsLoaded    prometheus.Counter
	scanDuration  prometheus.Histogram
	batchDuration *prometheus.HistogramVec
	batchErrors   *prometheus.CounterVec
	concurrency   prometheus.Gauge
	cacheOps      *prometheus.CounterVec
	cacheBytes    prometheus.Counter
}

// NewPrometheusHooks registers the graphload collectors on reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	durations := []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60}

	return &PrometheusHooks{
		loadsStarted: f.NewCounter(prometheus.CounterOpts{
			Name: "graphload_loads_started_total",
			Help: "Total number of graph loads started",
		}),
		loadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "graphload_loads_total",
			Help: "Total number of graph loads finished, by status",
		}, []string{"status"}),
		loadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphload_load_duration_seconds",
			Help:    "Duration of graph loads in seconds",
			Buckets: durations,
		}),
		nodesLoaded: f.NewCounter(prometheus.CounterOpts{
			Name: "graphload_nodes_loaded_total",
			Help: "Total number of nodes materialized",
		}),
		relsLoaded: f.NewCounter(prometheus.CounterOpts{
			Name: "graphload_relationships_loaded_total",
			Help: "Total number of relationships materialized",
		}),
		scanDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphload_node_scan_duration_seconds",
			Help:    "Duration of node scans in seconds",
			Buckets: durations,
		}),
		batchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "graphload_batch_duration_seconds",
			Help:    "Duration of relationship batches in seconds",
			Buckets: durations,
		}, []string{"direction"}),
		batchErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "graphload_batch_errors_total",
			Help: "Total number of failed relationship batches",
		}, []string{"direction"}),
		concurrency: f.NewGauge(prometheus.GaugeOpts{
			Name: "graphload_concurrency",
			Help: "Effective concurrency of the most recent load",
		}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "graphload_cache_operations_total",
			Help: "Total number of cache operations, by backend and result",
		}, []string{"backend", "result"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "graphload_cache_written_bytes_total",
			Help: "Total bytes written to the cache",
		}),
	}
}

// OnLoadStart counts the load and records its concurrency.
func (h *PrometheusHooks) OnLoadStart(_ context.Context, _ string, concurrency int) {
	h.loadsStarted.Inc()
	h.concurrency.Set(float64(concurrency))
}

// OnNodesScanned observes the node scan duration.
func (h *PrometheusHooks) OnNodesScanned(_ context.Context, _ string, _ int, d time.Duration) {
	h.scanDuration.Observe(d.Seconds())
}

// OnBatchComplete observes the batch duration and counts failed batches.
func (h *PrometheusHooks) OnBatchComplete(_ context.Context, direction string, _ int, d time.Duration, err error) {
	h.batchDuration.WithLabelValues(direction).Observe(d.Seconds())
	if err != nil {
		h.batchErrors.WithLabelValues(direction).Inc()
	}
}

// OnLoadComplete records the load outcome and the loaded element counts.
func (h *PrometheusHooks) OnLoadComplete(_ context.Context, _ string, nodes, rels int, d time.Duration, err error) {
	h.loadDuration.Observe(d.Seconds())
	if err != nil {
		h.loadsTotal.WithLabelValues("error").Inc()
		return
	}
	h.loadsTotal.WithLabelValues("ok").Inc()
	h.nodesLoaded.Add(float64(nodes))
	h.relsLoaded.Add(float64(rels))
}

// OnCacheHit counts a cache hit for backend.
func (h *PrometheusHooks) OnCacheHit(_ context.Context, backend string) {
	h.cacheOps.WithLabelValues(backend, "hit").Inc()
}

// OnCacheMiss counts a cache miss for backend.
func (h *PrometheusHooks) OnCacheMiss(_ context.Context, backend string) {
	h.cacheOps.WithLabelValues(backend, "miss").Inc()
}

// OnCacheSet counts a cache write for backend and its size in bytes.
func (h *PrometheusHooks) OnCacheSet(_ context.Context, backend string, size int) {
	h.cacheOps.WithLabelValues(backend, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

var (
	_ LoadHooks  = (*PrometheusHooks)(nil)
	_ CacheHooks = (*PrometheusHooks)(nil)
)
