package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhe-dashboard/backend-go/internal/cache"
	"github.com/dhe-dashboard/backend-go/internal/domain"
)

type stubLoader struct {
	calls int
	err   error
}

func (s *stubLoader) Load(context.Context) (*domain.Snapshot, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Snapshot{LoadedAt: time.Now()}, nil
}

func TestSnapshotColdCacheRunsPipeline(t *testing.T) {
	loader := &stubLoader{}
	svc := NewDashboardService(loader, cache.NewMemoryCache())

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Epoch)
	assert.Equal(t, 1, loader.calls)

	// Warm cache: second read must not rerun the pipeline.
	again, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap.Epoch, again.Epoch)
	assert.Equal(t, 1, loader.calls)
}

func TestRefreshBumpsEpoch(t *testing.T) {
	loader := &stubLoader{}
	svc := NewDashboardService(loader, cache.NewMemoryCache())

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	second, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Epoch)
	assert.Equal(t, int64(2), second.Epoch)
}

func TestEpochSurvivesInvalidate(t *testing.T) {
	loader := &stubLoader{}
	svc := NewDashboardService(loader, cache.NewMemoryCache())

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(context.Background()))

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), snap.Epoch)
}

func TestRefreshPropagatesPipelineError(t *testing.T) {
	loader := &stubLoader{err: errors.New("context canceled")}
	svc := NewDashboardService(loader, cache.NewMemoryCache())

	_, err := svc.Refresh(context.Background())
	assert.Error(t, err)
}
