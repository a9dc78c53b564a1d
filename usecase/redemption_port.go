package usecase

import (
	"context"

	"github.com/ridgelinepark/backend/domain"
)

// RedemptionRecorder abstracts the promo-redemption pipeline so the
// booking use case stays storage-agnostic. Implementations may buffer the
// record when primary storage is unavailable.
type RedemptionRecorder interface {
	RecordRedemption(ctx context.Context, redemption *domain.PromoRedemption) error
}
