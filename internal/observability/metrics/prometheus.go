package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "travelgo"

// Collector is a prometheus.Collector fed through the Sink interface. Names
// it does not know are ignored.
type Collector struct {
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	sessionsExpired  prometheus.Counter
	sessionsReaped   prometheus.Counter
	reapLatency      prometheus.Histogram
}

var _ Sink = (*Collector)(nil)

// NewCollector returns a Collector; register it with a prometheus.Registerer.
func NewCollector() *Collector {
	return &Collector{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests served, by method and status code.",
			}, []string{"method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Time to serve an HTTP request.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method"},
		),
		upstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Requests sent to the travel API, by endpoint and status.",
			}, []string{"endpoint", "status"},
		),
		upstreamLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Round-trip time of travel API requests.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
			}, []string{"endpoint"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_cache_lookups_total",
				Help:      "Search cache lookups, by service kind and result.",
			}, []string{"kind", "result"},
		),
		sessionsExpired: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_expired_total",
				Help:      "Sessions dropped because the travel API rejected their token.",
			},
		),
		sessionsReaped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_reaped_total",
				Help:      "Expired sessions swept from the in-memory store.",
			},
		),
		reapLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "session_reap_duration_seconds",
				Help:      "Time taken by one session sweep.",
				Buckets:   []float64{0.001, 0.01, 0.1, 1},
			},
		),
	}
}

// Count implements Sink.
func (c *Collector) Count(name string, value int64, tags map[string]string) {
	if c == nil || value < 0 {
		return
	}
	v := float64(value)
	switch name {
	case HTTPRequest:
		c.httpRequests.WithLabelValues(tags["method"], tags["status"]).Add(v)
	case UpstreamRequest:
		c.upstreamRequests.WithLabelValues(tags["endpoint"], tags["status"]).Add(v)
	case SearchCacheHit:
		c.cacheLookups.WithLabelValues(tags["kind"], "hit").Add(v)
	case SearchCacheMiss:
		c.cacheLookups.WithLabelValues(tags["kind"], "miss").Add(v)
	case SessionExpired:
		c.sessionsExpired.Add(v)
	case SessionsReaped:
		c.sessionsReaped.Add(v)
	}
}

// Timing implements Sink.
func (c *Collector) Timing(name string, d time.Duration, tags map[string]string) {
	if c == nil {
		return
	}
	s := d.Seconds()
	switch name {
	case HTTPLatency:
		c.httpLatency.WithLabelValues(tags["method"]).Observe(s)
	case UpstreamLatency:
		c.upstreamLatency.WithLabelValues(tags["endpoint"]).Observe(s)
	case SessionReapLatency:
		c.reapLatency.Observe(s)
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.httpRequests.Describe(ch)
	c.httpLatency.Describe(ch)
	c.upstreamRequests.Describe(ch)
	c.upstreamLatency.Describe(ch)
	c.cacheLookups.Describe(ch)
	c.sessionsExpired.Describe(ch)
	c.sessionsReaped.Describe(ch)
	c.reapLatency.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.httpRequests.Collect(ch)
	c.httpLatency.Collect(ch)
	c.upstreamRequests.Collect(ch)
	c.upstreamLatency.Collect(ch)
	c.cacheLookups.Collect(ch)
	c.sessionsExpired.Collect(ch)
	c.sessionsReaped.Collect(ch)
	c.reapLatency.Collect(ch)
}

// NewRegistry returns a registry holding the Go runtime and process
// collectors plus c.
func NewRegistry(c *Collector) (*prometheus.Registry, error) {
	r := prometheus.NewRegistry()
	if err := r.Register(prometheus.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := r.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}
	if c != nil {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}
