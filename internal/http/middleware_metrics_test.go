package httpx

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/travelgo/internal/observability/metrics"
)

type countingSink struct {
	mu      sync.Mutex
	counts  []map[string]string
	timings int
}

func (s *countingSink) Count(name string, _ int64, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == metrics.HTTPRequest {
		s.counts = append(s.counts, tags)
	}
}

func (s *countingSink) Timing(name string, _ time.Duration, _ map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == metrics.HTTPLatency {
		s.timings++
	}
}

func TestMetrics_RecordsMethodAndStatus(t *testing.T) {
	sink := &countingSink{}
	h := Metrics(sink)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/flights", "/missing", "/healthz", "/static/css/app.css"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, sink.counts, 2)
	assert.Equal(t, map[string]string{"method": "GET", "status": "200"}, sink.counts[0])
	assert.Equal(t, map[string]string{"method": "GET", "status": "404"}, sink.counts[1])
	assert.Equal(t, 2, sink.timings)
}

func TestMetrics_NilSinkPassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	rec := httptest.NewRecorder()
	Metrics(nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
