package services

import (
	"context"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/usecase"
)

// RedemptionBridge adapts the processor to the use-case port.
type RedemptionBridge struct {
	processor *RedemptionProcessor
}

func NewRedemptionBridge(processor *RedemptionProcessor) *RedemptionBridge {
	return &RedemptionBridge{processor: processor}
}

func (b *RedemptionBridge) RecordRedemption(ctx context.Context, redemption *domain.PromoRedemption) error {
	if b.processor == nil || redemption == nil {
		return domain.ErrInvalidPayload
	}
	return b.processor.Record(ctx, redemption)
}

var _ usecase.RedemptionRecorder = (*RedemptionBridge)(nil)
