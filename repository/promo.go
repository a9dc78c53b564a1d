package repository

import (
	"context"

	"github.com/ridgelinepark/backend/domain"
)

type PromoFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

// PromoRepository stores promo codes. GetActiveByCode matches the exact
// uppercase code with is_active = true; evaluation reads usage counters
// fresh on every call and never increments them itself.
type PromoRepository interface {
	GetActiveByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	GetByID(ctx context.Context, id string) (*domain.PromoCode, error)
	List(ctx context.Context, filter PromoFilter) ([]domain.PromoCode, error)
	Create(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error)
	Update(ctx context.Context, promo *domain.PromoCode) error
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int, error)
}

// RedemptionRepository records confirmed promo uses and bumps the usage
// counter. The increment lives here, outside the evaluation path.
type RedemptionRepository interface {
	Record(ctx context.Context, redemption *domain.PromoRedemption) error
}
