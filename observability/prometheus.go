// Package observability exports search metrics as Prometheus series so a
// live game can be watched through a /metrics endpoint. It implements the
// searcher collector interface; the decision packages stay unaware of
// Prometheus.
package observability

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pursuit/searcher"
)

// PrometheusCollector mirrors each completed search into Prometheus.
// Install it with searcher.WithMetrics or engine.WithCollector.
type PrometheusCollector struct {
	gatherer prometheus.Gatherer

	searches  prometheus.Counter
	nodes     prometheus.Counter
	prunes    prometheus.Counter
	fallbacks prometheus.Counter
	depth     prometheus.Gauge
	duration  prometheus.Histogram

	// live state of the search in flight, flushed on Complete
	startTime    time.Time
	goroutines   int
	searchNodes  atomic.Int64
	searchPrunes atomic.Int64
	searchDepth  atomic.Int32
	fellBack     atomic.Bool
}

var _ searcher.Collector = (*PrometheusCollector)(nil)

// NewPrometheusCollector registers the pursuit metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
// Constructing twice against one registry reuses the existing series.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	searches, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pursuit_searches_total",
		Help: "Total number of joint-move searches.",
	}), "pursuit_searches_total")
	if err != nil {
		return nil, err
	}
	nodes, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pursuit_search_nodes_total",
		Help: "Total number of search tree nodes expanded.",
	}), "pursuit_search_nodes_total")
	if err != nil {
		return nil, err
	}
	prunes, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pursuit_search_prunes_total",
		Help: "Total number of alpha-beta cutoffs.",
	}), "pursuit_search_prunes_total")
	if err != nil {
		return nil, err
	}
	fallbacks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pursuit_search_fallbacks_total",
		Help: "Searches that returned the greedy baseline because no depth completed in budget.",
	}), "pursuit_search_fallbacks_total")
	if err != nil {
		return nil, err
	}
	depth, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pursuit_search_depth",
		Help: "Deepest fully completed depth of the most recent search.",
	}), "pursuit_search_depth")
	if err != nil {
		return nil, err
	}
	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pursuit_search_duration_seconds",
		Help:    "Joint-move search latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}), "pursuit_search_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &PrometheusCollector{
		gatherer:  gatherer,
		searches:  searches,
		nodes:     nodes,
		prunes:    prunes,
		fallbacks: fallbacks,
		depth:     depth,
		duration:  duration,
	}, nil
}

// Start resets the in-flight state for a new search.
func (c *PrometheusCollector) Start(goroutines int) {
	c.startTime = time.Now()
	c.goroutines = goroutines
	c.searchNodes.Store(0)
	c.searchPrunes.Store(0)
	c.searchDepth.Store(0)
	c.fellBack.Store(false)
}

func (c *PrometheusCollector) AddNodes(n int64) {
	c.searchNodes.Add(n)
}

func (c *PrometheusCollector) AddPrunes(n int64) {
	c.searchPrunes.Add(n)
}

func (c *PrometheusCollector) SetDepth(depth int) {
	c.searchDepth.Store(int32(depth))
}

func (c *PrometheusCollector) SetFallback() {
	c.fellBack.Store(true)
}

// Complete flushes the in-flight search into the Prometheus series and
// returns the per-search summary.
func (c *PrometheusCollector) Complete() searcher.SearchMetric {
	metric := searcher.SearchMetric{
		StartTime:  c.startTime,
		Duration:   time.Since(c.startTime),
		Goroutines: c.goroutines,
		Depth:      int(c.searchDepth.Load()),
		Nodes:      c.searchNodes.Load(),
		Prunes:     c.searchPrunes.Load(),
		Fallback:   c.fellBack.Load(),
	}

	c.searches.Inc()
	c.nodes.Add(float64(metric.Nodes))
	c.prunes.Add(float64(metric.Prunes))
	if metric.Fallback {
		c.fallbacks.Inc()
	}
	c.depth.Set(float64(metric.Depth))
	c.duration.Observe(metric.Duration.Seconds())

	return metric
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PrometheusCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerHistogram(reg prometheus.Registerer, histogram prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(histogram); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return histogram, nil
}
