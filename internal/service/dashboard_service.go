// backend-go/internal/service/dashboard_service.go
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/dhe-dashboard/backend-go/internal/cache"
	"github.com/dhe-dashboard/backend-go/internal/domain"
	"github.com/dhe-dashboard/backend-go/pkg/logger"
)

// SnapshotLoader runs one pipeline pass. internal/pipeline.Loader satisfies
// it.
type SnapshotLoader interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
}

// DashboardService owns the pipeline and the snapshot cache. Reads serve the
// cached snapshot; Refresh reruns the pipeline under a new epoch. Concurrent
// refreshes are serialized so two callers cannot race past each other and
// publish out of order.
type DashboardService struct {
	loader SnapshotLoader
	cache  cache.SnapshotCache

	refreshMu sync.Mutex
	lastEpoch int64
}

func NewDashboardService(loader SnapshotLoader, c cache.SnapshotCache) *DashboardService {
	return &DashboardService{loader: loader, cache: c}
}

// Snapshot returns the current snapshot, running the pipeline on a cold
// cache.
func (s *DashboardService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap, ok, err := s.cache.Get(ctx)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("snapshot cache read failed, rebuilding")
	}
	if ok {
		return snap, nil
	}
	return s.Refresh(ctx)
}

// Refresh reruns the full pipeline and publishes the result under the next
// epoch. The previous snapshot keeps serving readers until the new one is
// stored.
func (s *DashboardService) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// Epochs stay monotonic across cache invalidation: resume from whichever
	// of the cached epoch and the in-process high-water mark is larger.
	if prev, ok, err := s.cache.Get(ctx); err == nil && ok && prev.Epoch > s.lastEpoch {
		s.lastEpoch = prev.Epoch
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline run failed: %w", err)
	}
	s.lastEpoch++
	snap.Epoch = s.lastEpoch

	if err := s.cache.Set(ctx, snap); err != nil {
		// Serve the fresh snapshot anyway; only persistence failed.
		logger.Log.Error().Err(err).Msg("snapshot cache write failed")
	}

	logger.Log.Info().Int64("epoch", snap.Epoch).Time("loaded_at", snap.LoadedAt).Msg("snapshot refreshed")
	return snap, nil
}

// Invalidate drops the cached snapshot so the next read rebuilds.
func (s *DashboardService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}
