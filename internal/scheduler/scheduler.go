// Package scheduler runs the periodic room availability sweep. It is
// the drift-correction path: bookings whose checkout date passes
// without any mutation (nobody confirms, cancels, or deletes them)
// only release their room through this sweep.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper is the all-rooms reconciliation entry point.
type Sweeper interface {
	ReconcileAll(ctx context.Context) error
}

// Pinger verifies datastore connectivity before the sweep is scheduled.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Scheduler struct {
	db       Pinger
	sweeper  Sweeper
	interval time.Duration
	log      *zap.Logger
}

func New(db Pinger, sweeper Sweeper, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		db:       db,
		sweeper:  sweeper,
		interval: interval,
		log:      log.With(zap.String("component", "scheduler")),
	}
}

// Start runs the sweep immediately and then on every interval until ctx
// is cancelled. If the datastore is unreachable at startup the sweep is
// disabled for this process: no retry loop, the next restart tries
// again. Errors during a run are logged and the next tick still fires.
func (s *Scheduler) Start(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err := s.db.Ping(pingCtx)
	cancel()
	if err != nil {
		s.log.Warn("Database not reachable, availability sweep disabled for this process",
			zap.Error(err),
		)
		return
	}

	s.log.Info("Room availability scheduler started",
		zap.Duration("interval", s.interval),
	)

	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Room availability scheduler stopped")
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	if err := s.sweeper.ReconcileAll(ctx); err != nil {
		// Transient failures are expected; the next tick retries.
		s.log.Error("Availability sweep failed", zap.Error(err))
	}
}
