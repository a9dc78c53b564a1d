package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	bookingUC "github.com/ridgelinepark/backend/usecase/booking"
)

// BookingSweeper expires pending bookings whose checkout session was
// abandoned, on a fixed cron schedule.
type BookingSweeper struct {
	bookings *bookingUC.UseCase
	cron     *cron.Cron
	maxAge   time.Duration
	logger   *zap.Logger
}

func NewBookingSweeper(bookings *bookingUC.UseCase, schedule string, maxAge time.Duration, logger *zap.Logger) *BookingSweeper {
	if schedule == "" {
		schedule = "@hourly"
	}
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sw := &BookingSweeper{
		bookings: bookings,
		cron:     cron.New(),
		maxAge:   maxAge,
		logger:   logger,
	}

	_, _ = sw.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		sw.Sweep(ctx)
	})
	return sw
}

func (sw *BookingSweeper) Start() {
	if sw == nil || sw.cron == nil {
		return
	}
	sw.cron.Start()
	sw.logger.Info("booking sweeper started")
}

func (sw *BookingSweeper) Stop(ctx context.Context) {
	if sw == nil || sw.cron == nil {
		return
	}
	stopCtx := sw.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	sw.logger.Info("booking sweeper stopped")
}

// Sweep runs one expiry pass.
func (sw *BookingSweeper) Sweep(ctx context.Context) {
	expired, err := sw.bookings.ExpireStale(ctx, sw.maxAge)
	if err != nil {
		sw.logger.Error("stale booking sweep failed", zap.Error(err))
		return
	}
	if expired > 0 {
		sw.logger.Info("stale bookings expired", zap.Int("count", expired))
	}
}
