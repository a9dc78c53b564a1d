package promo

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

// Manager covers the admin console's promo-code CRUD.
type Manager struct {
	promos repository.PromoRepository
	logger *zap.Logger
}

func NewManager(promos repository.PromoRepository, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		promos: promos,
		logger: logger,
	}
}

func (m *Manager) List(ctx context.Context, filter repository.PromoFilter) ([]domain.PromoCode, error) {
	return m.promos.List(ctx, filter)
}

func (m *Manager) Get(ctx context.Context, id string) (*domain.PromoCode, error) {
	return m.promos.GetByID(ctx, id)
}

func (m *Manager) Create(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error) {
	if err := validatePromo(promo); err != nil {
		return nil, err
	}
	return m.promos.Create(ctx, promo)
}

func (m *Manager) Update(ctx context.Context, promo *domain.PromoCode) error {
	if promo == nil || promo.ID == "" {
		return domain.ErrInvalidPayload
	}
	if err := validatePromo(promo); err != nil {
		return err
	}
	return m.promos.Update(ctx, promo)
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidPayload
	}
	return m.promos.Delete(ctx, id)
}

func validatePromo(promo *domain.PromoCode) error {
	if promo == nil {
		return domain.ErrInvalidPayload
	}
	if strings.TrimSpace(promo.Code) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "promo code is required")
	}
	switch promo.DiscountType {
	case domain.DiscountPercentage:
		if promo.DiscountValue <= 0 || promo.DiscountValue > 100 {
			return domain.NewError(domain.ErrCodeInvalid, "percentage discount must be between 0 and 100")
		}
	case domain.DiscountFixed:
		if promo.DiscountValue <= 0 {
			return domain.NewError(domain.ErrCodeInvalid, "fixed discount must be positive")
		}
	default:
		return domain.NewError(domain.ErrCodeInvalid, "unknown discount type")
	}
	if promo.ValidFrom != nil && promo.ValidUntil != nil && promo.ValidUntil.Before(*promo.ValidFrom) {
		return domain.NewError(domain.ErrCodeInvalid, "valid_until precedes valid_from")
	}
	if promo.MaxUses != nil && *promo.MaxUses <= 0 {
		return domain.NewError(domain.ErrCodeInvalid, "max_uses must be positive")
	}
	if promo.MinOrderAmount != nil && *promo.MinOrderAmount < 0 {
		return domain.NewError(domain.ErrCodeInvalid, "min_order_amount must not be negative")
	}
	return nil
}
