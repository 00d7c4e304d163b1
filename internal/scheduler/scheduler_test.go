package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePruner struct {
	calls   atomic.Int32
	maxIdle atomic.Int64
	removed int64
	err     error
}

func (f *fakePruner) PruneSessions(_ context.Context, maxIdle time.Duration) (int64, error) {
	f.calls.Add(1)
	f.maxIdle.Store(int64(maxIdle))
	return f.removed, f.err
}

func TestRunOnce(t *testing.T) {
	pruner := &fakePruner{removed: 3}
	s := New(pruner, 48*time.Hour, "")

	assert.Equal(t, int64(3), s.RunOnce(context.Background()))
	assert.Equal(t, int64(48*time.Hour), pruner.maxIdle.Load())
	assert.Equal(t, DefaultPruneSpec, s.spec)
}

func TestRunOnce_Error(t *testing.T) {
	pruner := &fakePruner{removed: 5, err: errors.New("db down")}
	assert.Equal(t, int64(0), New(pruner, time.Hour, "").RunOnce(context.Background()))
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New(&fakePruner{}, time.Hour, "not a cron spec")
	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cron.AddFunc")
}

func TestStart_RunsOnSchedule(t *testing.T) {
	pruner := &fakePruner{}
	s := New(pruner, time.Hour, "@every 1s")
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return pruner.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
