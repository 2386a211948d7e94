package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/PLZ-test/wms/internal/application/collection"
	"go.uber.org/zap"
)

// Collector runs one collection pass over every active channel credential
type Collector interface {
	CollectAll(ctx context.Context) (collection.RunSummary, error)
}

// CollectionScheduler triggers a collection pass on a fixed interval. It is
// constructed and owned by the composition root; Start and Stop bracket its
// lifetime and Stop waits for an in-flight pass to finish.
type CollectionScheduler struct {
	collector Collector
	interval  time.Duration
	logger    *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// New creates a CollectionScheduler. A non-positive interval falls back to
// 30 minutes.
func New(collector Collector, interval time.Duration, logger *zap.Logger) *CollectionScheduler {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &CollectionScheduler{
		collector: collector,
		interval:  interval,
		logger:    logger,
	}
}

// Start launches the ticker loop. Starting an already-running scheduler is a
// no-op.
func (s *CollectionScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("collection scheduler started",
		zap.Duration("interval", s.interval),
	)
}

// Stop cancels the loop and waits for an in-flight pass to finish. Stopping a
// stopped scheduler is a no-op.
func (s *CollectionScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("collection scheduler stopped")
}

func (s *CollectionScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.collect(ctx)
		}
	}
}

func (s *CollectionScheduler) collect(ctx context.Context) {
	summary, err := s.collector.CollectAll(ctx)
	if err != nil {
		s.logger.Error("scheduled collection pass failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled collection pass finished",
		zap.Int("channels", len(summary.Results)),
		zap.Int("failed_channels", summary.FailedChannels()),
		zap.Int("fetched", summary.TotalFetched()),
	)
}
