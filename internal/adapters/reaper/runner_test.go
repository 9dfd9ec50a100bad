package reaper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/travelgo/config"
	"github.com/target/travelgo/internal/adapters/memory"
	"github.com/target/travelgo/internal/testutil"
)

func TestNewRunner_RequiresSweeper(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	require.Error(t, err)
}

func TestRunner_StopsOnCancel(t *testing.T) {
	store := memory.NewSessionStore()
	require.NoError(t, store.Save(context.Background(), testutil.NewSession().Build()))

	r, err := NewRunner(RunnerOptions{
		Sweeper: store,
		Config:  config.SessionConfig{SweepInterval: 10 * time.Millisecond},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
	assert.Equal(t, 1, store.Len(), "live sessions survive sweeps")
}
