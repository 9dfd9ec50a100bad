package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/travelgo/config"
	"github.com/target/travelgo/internal/adapters/memory"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func memoryConfig(t *testing.T, apiURL string) *config.AppConfig {
	t.Helper()
	t.Setenv("NODE_ENV", "")
	cfg := &config.AppConfig{
		HTTP:        config.HTTPConfig{Addr: "127.0.0.1:0"},
		TravelAPI:   config.TravelAPIConfig{BaseURL: apiURL},
		Session:     config.SessionConfig{Backend: config.SessionBackendMemory},
		SearchCache: config.SearchCacheConfig{Backend: config.SessionBackendMemory, TTL: time.Minute},
		LoginLimit:  config.LoginLimitConfig{PerMinute: 10, Burst: 5},
	}
	cfg.Sanitize()
	return cfg
}

func TestNewServices_MemoryBackends(t *testing.T) {
	cfg := memoryConfig(t, "http://127.0.0.1:1")

	c, err := NewServices(&ServiceDeps{Config: cfg, Logger: quietLogger()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.IsType(t, &memory.SessionStore{}, c.Sessions)
	assert.IsType(t, &memory.Cache{}, c.Cache)
	assert.NotNil(t, c.Reaper)
	assert.NotNil(t, c.Auth)
	assert.NotNil(t, c.Travel)
	assert.NotNil(t, c.Account)
	assert.NotNil(t, c.Observability.Sink)
	assert.NotNil(t, c.Observability.MetricsHandler)
	assert.False(t, c.Observability.StatsD.Enabled())
}

func TestNewServices_CacheDisabled(t *testing.T) {
	cfg := memoryConfig(t, "http://127.0.0.1:1")
	cfg.SearchCache.TTL = 0

	c, err := NewServices(&ServiceDeps{Config: cfg, Logger: quietLogger()})
	require.NoError(t, err)
	assert.Nil(t, c.Cache)
}

func TestNewServices_RedisBackendNeedsClient(t *testing.T) {
	cfg := memoryConfig(t, "http://127.0.0.1:1")
	cfg.Session.Backend = config.SessionBackendRedis

	_, err := NewServices(&ServiceDeps{Config: cfg, Logger: quietLogger()})
	require.Error(t, err)
}

func TestNewServices_RejectsRelativeAPIURL(t *testing.T) {
	cfg := memoryConfig(t, "not-a-url")

	_, err := NewServices(&ServiceDeps{Config: cfg, Logger: quietLogger()})
	require.Error(t, err)
}

func TestBuildHandler_ServesHealthAndMetrics(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(upstream.Close)

	cfg := memoryConfig(t, upstream.URL)
	c, err := NewServices(&ServiceDeps{Config: cfg, Logger: quietLogger()})
	require.NoError(t, err)

	h, err := BuildHandler(&HTTPServerConfig{Config: cfg, Services: c, Logger: quietLogger()})
	require.NoError(t, err)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRunWithShutdown_StopsOnSignal(t *testing.T) {
	cfg := memoryConfig(t, "http://127.0.0.1:1")
	c, err := NewServices(&ServiceDeps{Config: cfg, Logger: quietLogger()})
	require.NoError(t, err)

	signals := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() {
		done <- RunWithShutdown(context.Background(), &RunConfig{
			Config: cfg, Services: c, Logger: quietLogger(), Signals: signals,
		})
	}()

	time.Sleep(50 * time.Millisecond)
	signals <- syscall.SIGTERM

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
}
