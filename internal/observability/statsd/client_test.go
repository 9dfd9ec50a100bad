package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" travelapi.request ": "travelapi.request",
		"search..cache.hit":   "search.cache.hit",
		"path/with space":     "path_with_space",
		"a:b|c#d":             "a_b_c_d",
		"..":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, metricName(in), "input %q", in)
	}
}

func TestLine(t *testing.T) {
	t.Parallel()

	c := &Client{prefix: "travelgo", global: cleanTags(map[string]string{" env ": " prod ", "service": "web"})}

	assert.Equal(t, "travelgo.session.expired:1|c|#env:prod,service:web",
		c.line("session.expired", "1", "c", nil))
	assert.Equal(t, "travelgo.travelapi.request:1|c|#endpoint:flights.search,env:stage,service:web",
		c.line("travelapi.request", "1", "c", map[string]string{"endpoint": "flights.search", "env": "stage", "": "dropped"}))
	assert.Empty(t, c.line(" ", "1", "c", nil))
}

func TestNewClient_DisabledDropsEverything(t *testing.T) {
	t.Parallel()

	c, err := NewClient(Config{Enabled: false, Address: "127.0.0.1:8125"})
	require.NoError(t, err)
	assert.False(t, c.Enabled())
	assert.Equal(t, DefaultPrefix, c.prefix)

	c.Count("x", 1, nil)
	require.NoError(t, c.Close())

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	nilClient.Timing("x", time.Second, nil)
	assert.NoError(t, nilClient.Close())
}

func TestClient_SendsDatagrams(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pc.Close() })

	c, err := NewClient(Config{Enabled: true, Address: pc.LocalAddr().String(), Prefix: ".app."})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.True(t, c.Enabled())

	read := func() string {
		t.Helper()
		buf := make([]byte, 512)
		require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
		n, _, err := pc.ReadFrom(buf)
		require.NoError(t, err)
		return string(buf[:n])
	}

	c.Count("search.cache.hit", 2, map[string]string{"kind": "flight"})
	assert.Equal(t, "app.search.cache.hit:2|c|#kind:flight", read())

	c.Timing("travelapi.latency", 1500*time.Microsecond, nil)
	assert.Equal(t, "app.travelapi.latency:1.5|ms", read())

	c.Gauge("sessions.active", 3, nil)
	assert.Equal(t, "app.sessions.active:3|g", read())

	require.NoError(t, c.Close())
	assert.False(t, c.Enabled())
}
