package promo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridgelinepark/backend/domain"
)

func validPercentagePromo() *domain.PromoCode {
	return &domain.PromoCode{
		Code:          "SUMMER20",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 20,
		IsActive:      true,
	}
}

func TestManagerCreateValidates(t *testing.T) {
	m := NewManager(&fakePromoRepo{}, nil)

	cases := []struct {
		name   string
		mutate func(*domain.PromoCode)
	}{
		{"empty code", func(p *domain.PromoCode) { p.Code = "  " }},
		{"zero percentage", func(p *domain.PromoCode) { p.DiscountValue = 0 }},
		{"percentage above 100", func(p *domain.PromoCode) { p.DiscountValue = 120 }},
		{"unknown type", func(p *domain.PromoCode) { p.DiscountType = "bogo" }},
		{"inverted window", func(p *domain.PromoCode) {
			from := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
			until := from.Add(-time.Hour)
			p.ValidFrom = &from
			p.ValidUntil = &until
		}},
		{"non-positive max uses", func(p *domain.PromoCode) { p.MaxUses = intPtr(0) }},
		{"negative minimum order", func(p *domain.PromoCode) { p.MinOrderAmount = int64Ptr(-1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			promo := validPercentagePromo()
			tc.mutate(promo)
			_, err := m.Create(context.Background(), promo)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		})
	}
}

func TestManagerCreateNegativeFixedDiscount(t *testing.T) {
	m := NewManager(&fakePromoRepo{}, nil)

	_, err := m.Create(context.Background(), &domain.PromoCode{
		Code:          "TAKE50",
		DiscountType:  domain.DiscountFixed,
		DiscountValue: -500,
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestManagerCreateAcceptsValidPromo(t *testing.T) {
	repo := &fakePromoRepo{}
	m := NewManager(repo, nil)

	created, err := m.Create(context.Background(), validPercentagePromo())
	require.NoError(t, err)
	assert.Equal(t, "SUMMER20", created.Code)
	assert.Equal(t, 1, repo.mutations)
}

func TestManagerUpdateRequiresID(t *testing.T) {
	m := NewManager(&fakePromoRepo{}, nil)

	promo := validPercentagePromo()
	assert.Error(t, m.Update(context.Background(), promo), "update without id must fail")

	promo.ID = "promo-1"
	assert.NoError(t, m.Update(context.Background(), promo))
}

func TestManagerDeleteRequiresID(t *testing.T) {
	m := NewManager(&fakePromoRepo{}, nil)

	assert.Error(t, m.Delete(context.Background(), ""))
	assert.NoError(t, m.Delete(context.Background(), "promo-1"))
}
