// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"video-discovery-service/internal/app/service"
	"video-discovery-service/pkg/locker"
)

// ingestLockKey coordinates ingest runs across service instances.
const ingestLockKey = "ingest:scheduler:lock"

// IngestScheduler runs periodic catalog ingest with distributed locking so
// only one instance pulls the feeds at a time.
type IngestScheduler struct {
	ingest   *service.IngestService
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	locker   locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// IngestConfig holds ingest scheduler configuration.
type IngestConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewIngestScheduler creates a new IngestScheduler.
func NewIngestScheduler(
	ingest *service.IngestService,
	cfg IngestConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *IngestScheduler {
	return &IngestScheduler{
		ingest:   ingest,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   logger,
		locker:   locker,
	}
}

// Start begins the background ingest job.
func (s *IngestScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting ingest scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *IngestScheduler) Stop() {
	s.logger.Info("stopping ingest scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("ingest scheduler stopped")
}

func (s *IngestScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeIngest()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeIngest()
		}
	}
}

// executeIngest runs one ingest pass under the distributed lock.
//
// The lock TTL equals the interval (cooldown model): after a clean run the
// lock is left to expire so no other instance re-ingests inside the same
// interval; after a failed run it is released immediately so another
// instance can retry.
func (s *IngestScheduler) executeIngest() {
	acquired, err := s.locker.Acquire(s.ctx, ingestLockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire ingest lock", zap.Error(err))
		return
	}
	if !acquired {
		s.logger.Debug("another instance is ingesting, skipping run")
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	results := s.ingest.IngestAll(ctx)

	ingested, failed := 0, 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			s.logger.Warn("source ingest failed",
				zap.String("source", r.Source),
				zap.Error(r.Error),
			)
		} else {
			ingested += r.Count
		}
	}

	if failed > 0 {
		if err := s.locker.Release(s.ctx, ingestLockKey); err != nil {
			s.logger.Error("failed to release ingest lock after error", zap.Error(err))
		}
		s.logger.Info("ingest completed with errors, lock released for retry",
			zap.Int("total_ingested", ingested),
			zap.Int("sources_failed", failed),
		)
		return
	}

	s.logger.Info("ingest completed, lock held for cooldown",
		zap.Int("total_ingested", ingested),
		zap.Duration("cooldown", s.interval),
	)
}
