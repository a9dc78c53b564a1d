package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/internal/infrastructure/buffer"
	"github.com/ridgelinepark/backend/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the redemption buffer is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// RedemptionProcessor writes promo redemptions to Postgres, falling back
// to the BoltDB buffer while the database is unreachable. Buffered
// records are drained on a cron schedule. This is the only pipeline that
// increments promo usage counters.
type RedemptionProcessor struct {
	store       *buffer.Store
	monitor     ConnectionHealth
	redemptions repository.RedemptionRepository
	logger      *zap.Logger
	cron        *cron.Cron
	cfg         ProcessorConfig
}

func NewRedemptionProcessor(
	store *buffer.Store,
	monitor ConnectionHealth,
	redemptions repository.RedemptionRepository,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *RedemptionProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rp := &RedemptionProcessor{
		store:       store,
		monitor:     monitor,
		redemptions: redemptions,
		logger:      logger,
		cfg:         cfg,
		cron:        cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = rp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := rp.Drain(ctx); err != nil {
			rp.logger.Error("redemption buffer drain failed", zap.Error(err))
		}
	})

	return rp
}

// Start launches the cron scheduler.
func (rp *RedemptionProcessor) Start() {
	if rp == nil || rp.cron == nil {
		return
	}
	rp.cron.Start()
	rp.logger.Info("redemption processor started")
}

// Stop gracefully stops the scheduler.
func (rp *RedemptionProcessor) Stop(ctx context.Context) {
	if rp == nil || rp.cron == nil {
		return
	}
	stopCtx := rp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	rp.logger.Info("redemption processor stopped")
}

// Record attempts the write immediately and buffers it on failure, so a
// short Postgres outage does not lose confirmed redemptions.
func (rp *RedemptionProcessor) Record(ctx context.Context, redemption *domain.PromoRedemption) error {
	if rp == nil || rp.store == nil {
		return fmt.Errorf("redemption processor not configured")
	}
	if redemption == nil {
		return domain.ErrInvalidPayload
	}

	if rp.monitor == nil || rp.monitor.IsOnline() {
		if err := rp.redemptions.Record(ctx, redemption); err == nil {
			return nil
		} else {
			rp.logger.Warn("immediate redemption write failed, buffering", zap.Error(err))
		}
	}

	payload, err := json.Marshal(redemption)
	if err != nil {
		return err
	}
	return rp.store.Enqueue(buffer.Item{
		BookingID: redemption.BookingID,
		Data:      payload,
	})
}

// Drain replays buffered redemptions in order.
func (rp *RedemptionProcessor) Drain(ctx context.Context) error {
	if rp == nil || rp.store == nil {
		return nil
	}
	if rp.monitor != nil && !rp.monitor.IsOnline() {
		rp.logger.Debug("skipping redemption drain (offline)")
		return nil
	}

	items, err := rp.store.GetBatch(rp.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := rp.processItem(ctx, item); err != nil {
			rp.logger.Error("failed to replay redemption",
				zap.String("item_id", item.ID),
				zap.String("booking_id", item.BookingID),
				zap.Error(err))

			item.Retries++
			if item.Retries >= rp.cfg.MaxRetries {
				rp.logger.Warn("dropping redemption (max retries reached)", zap.String("item_id", item.ID))
				_ = rp.store.Remove(item)
				continue
			}

			if err := rp.store.Remove(item); err != nil {
				rp.logger.Warn("failed to remove redemption item", zap.Error(err))
			}
			if err := rp.store.Requeue(item); err != nil {
				rp.logger.Error("failed to requeue redemption item", zap.Error(err))
			}
			continue
		}

		if err := rp.store.Remove(item); err != nil {
			rp.logger.Warn("failed to purge replayed redemption", zap.Error(err))
		}
	}
	return nil
}

// Size returns the number of buffered redemptions.
func (rp *RedemptionProcessor) Size() int {
	if rp == nil || rp.store == nil {
		return 0
	}
	size, err := rp.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (rp *RedemptionProcessor) processItem(ctx context.Context, item buffer.Item) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var redemption domain.PromoRedemption
	if err := json.Unmarshal(item.Data, &redemption); err != nil {
		return err
	}
	return rp.redemptions.Record(ctx, &redemption)
}
