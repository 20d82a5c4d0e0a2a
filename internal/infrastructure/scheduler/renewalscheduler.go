// Package scheduler runs the periodic renewal sweep.
package scheduler

import (
	"context"
	"sync"
	"time"

	subscriptionUsecases "lumina/internal/application/subscription/usecases"
	"lumina/internal/shared/logger"
)

// RenewalScheduler periodically sweeps bundles whose renewal date has
// passed and runs the renewal flow on them.
type RenewalScheduler struct {
	renewDueUC *subscriptionUsecases.RenewDueSubscriptionsUseCase
	logger     logger.Interface
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	interval   time.Duration
}

// NewRenewalScheduler creates a scheduler with the given sweep interval.
func NewRenewalScheduler(
	renewDueUC *subscriptionUsecases.RenewDueSubscriptionsUseCase,
	interval time.Duration,
	logger logger.Interface,
) *RenewalScheduler {
	return &RenewalScheduler{
		renewDueUC: renewDueUC,
		logger:     logger,
		stopChan:   make(chan struct{}),
		interval:   interval,
	}
}

// Start starts the scheduler
func (s *RenewalScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting renewal scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully
func (s *RenewalScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping renewal scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("renewal scheduler stopped")
	})
}

func (s *RenewalScheduler) runLoop(ctx context.Context) {
	// Run immediately on startup to catch renewals missed while down
	s.runSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("renewal scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			s.logger.Infow("renewal scheduler stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *RenewalScheduler) runSweep(ctx context.Context) {
	s.logger.Debugw("renewal sweep started")

	startTime := time.Now()

	summary, err := s.renewDueUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("renewal sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if summary.Scanned > 0 {
		s.logger.Infow("renewal sweep completed",
			"scanned", summary.Scanned,
			"succeeded", summary.Succeeded,
			"failed", summary.Failed,
			"skipped", summary.Skipped,
			"duration", time.Since(startTime),
		)
	} else {
		s.logger.Debugw("no subscriptions due for renewal",
			"duration", time.Since(startTime),
		)
	}
}
