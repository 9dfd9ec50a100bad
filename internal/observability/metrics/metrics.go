// Package metrics names the metrics the front end emits and fans them out to
// StatsD and Prometheus.
package metrics

import (
	"time"

	obserrors "github.com/target/travelgo/internal/observability/errors"
)

// Metric names, dotted for StatsD. The Prometheus collector maps each one to
// a travelgo_* series.
const (
	HTTPRequest        = "http.request"
	HTTPLatency        = "http.latency"
	UpstreamRequest    = "travelapi.request"
	UpstreamLatency    = "travelapi.latency"
	SearchCacheHit     = "search.cache.hit"
	SearchCacheMiss    = "search.cache.miss"
	SessionExpired     = "session.expired"
	SessionsReaped     = "session.reaped"
	SessionReapLatency = "session.reap_duration"
)

// Sink receives counters and timings.
type Sink interface {
	Count(name string, value int64, tags map[string]string)
	Timing(name string, value time.Duration, tags map[string]string)
}

// Multi forwards every call to each non-nil sink.
type Multi []Sink

// NewMulti drops nil sinks and returns nil when none remain.
func NewMulti(sinks ...Sink) Sink {
	var out Multi
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return out
	}
}

// Count implements Sink.
func (m Multi) Count(name string, value int64, tags map[string]string) {
	for _, s := range m {
		s.Count(name, value, tags)
	}
}

// Timing implements Sink.
func (m Multi) Timing(name string, value time.Duration, tags map[string]string) {
	for _, s := range m {
		s.Timing(name, value, tags)
	}
}

// UpstreamCall describes one request to the travel API.
type UpstreamCall struct {
	Endpoint string
	Status   string // HTTP status code, or "error" when no response arrived
	Duration time.Duration
	Err      error
}

// EmitUpstream records a travel API call, tagging transport failures with their class.
func EmitUpstream(sink Sink, in UpstreamCall) {
	if sink == nil {
		return
	}
	tags := map[string]string{"endpoint": in.Endpoint, "status": in.Status}
	if in.Err != nil {
		tags["error_class"] = obserrors.Classify(in.Err)
	}
	sink.Count(UpstreamRequest, 1, tags)
	sink.Timing(UpstreamLatency, in.Duration, CloneTags(tags))
}

// CloneTags copies a tag map so sinks may keep it.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
