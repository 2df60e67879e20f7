package contract

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper runs the expiration sweep once at startup and then once a day,
// anchored to local midnight. A failed run is logged and the schedule
// continues; the sweep itself is idempotent so missed or doubled runs are
// harmless.
type Sweeper struct {
	service Service
	logger  *zap.Logger
}

func NewSweeper(service Service, logger ...*zap.Logger) *Sweeper {
	l := zap.L().Named("contract.sweeper")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contract.sweeper")
	}
	return &Sweeper{service: service, logger: l}
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("contract sweeper started")
	s.runOnce(ctx)

	timer := time.NewTimer(untilNextMidnight(time.Now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("contract sweeper stopped")
			return
		case <-timer.C:
			s.runOnce(ctx)
			timer.Reset(24 * time.Hour)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	result, err := s.service.SweepExpired(ctx)
	if err != nil {
		s.logger.Error("scheduled sweep failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled sweep finished",
		zap.Int("expired_count", result.ExpiredCount),
	)
}

func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}
