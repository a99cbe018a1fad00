package sheets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/PratikDhanave/interest-registration-service/internal/metrics"
	"github.com/PratikDhanave/interest-registration-service/internal/models"
)

// Syncer runs appends in the background. Errors are logged and counted,
// never returned to the request that triggered them.
type Syncer struct {
	appender Appender
	timeout  time.Duration
	logger   *zap.Logger
	metrics  *metrics.Metrics
	wg       sync.WaitGroup
}

func NewSyncer(appender Appender, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *Syncer {
	return &Syncer{
		appender: appender,
		timeout:  timeout,
		logger:   logger,
		metrics:  m,
	}
}

// Mirror starts an append and returns immediately. The append keeps the
// values of ctx (trace span) but not its cancellation.
func (s *Syncer) Mirror(ctx context.Context, reg models.Registration) {
	detached := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.fail(reg, fmt.Errorf("panic: %v", r))
			}
		}()

		ctx, cancel := context.WithTimeout(detached, s.timeout)
		defer cancel()

		start := time.Now()
		err := s.appender.Append(ctx, reg)
		s.metrics.SheetLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			s.fail(reg, err)
			return
		}

		s.metrics.SheetAppends.WithLabelValues(metrics.OutcomeOK).Inc()
		s.logger.Debug("registration mirrored to sheet", zap.Stringer("registration_id", reg.ID))
	}()
}

func (s *Syncer) fail(reg models.Registration, err error) {
	s.metrics.SheetAppends.WithLabelValues(metrics.OutcomeFailed).Inc()
	s.logger.Error("sheet sync failed",
		zap.Stringer("registration_id", reg.ID),
		zap.Error(err),
	)
}

// Wait blocks until in-flight appends finish or ctx is done.
func (s *Syncer) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Noop is the mirror used when no spreadsheet is configured.
type Noop struct{}

func (Noop) Mirror(context.Context, models.Registration) {}

func (Noop) Wait(context.Context) error { return nil }
