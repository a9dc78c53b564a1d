package promo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

type fakePromoRepo struct {
	promo     *domain.PromoCode
	err       error
	lookedUp  []string
	mutations int
}

func (f *fakePromoRepo) GetActiveByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	f.lookedUp = append(f.lookedUp, code)
	if f.err != nil {
		return nil, f.err
	}
	if f.promo == nil {
		return nil, domain.ErrPromoNotFound
	}
	return f.promo, nil
}

func (f *fakePromoRepo) GetByID(ctx context.Context, id string) (*domain.PromoCode, error) {
	return nil, domain.ErrPromoNotFound
}

func (f *fakePromoRepo) List(ctx context.Context, filter repository.PromoFilter) ([]domain.PromoCode, error) {
	return nil, nil
}

func (f *fakePromoRepo) Create(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error) {
	f.mutations++
	return promo, nil
}

func (f *fakePromoRepo) Update(ctx context.Context, promo *domain.PromoCode) error {
	f.mutations++
	return nil
}

func (f *fakePromoRepo) Delete(ctx context.Context, id string) error {
	f.mutations++
	return nil
}

func (f *fakePromoRepo) CountActive(ctx context.Context) (int, error) { return 0, nil }

func intPtr(v int) *int              { return &v }
func int64Ptr(v int64) *int64        { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var evalNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func percentPromo(value float64) *domain.PromoCode {
	return &domain.PromoCode{
		ID:            "promo-1",
		Code:          "SUMMER20",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: value,
		IsActive:      true,
	}
}

func TestEvaluateRequiresCode(t *testing.T) {
	repo := &fakePromoRepo{}
	ev := NewEvaluator(repo, nil)

	for _, code := range []string{"", "   ", "\t"} {
		eval, err := ev.Evaluate(context.Background(), code, 10000)
		require.NoError(t, err)
		assert.False(t, eval.Valid)
		assert.Equal(t, MsgCodeRequired, eval.Error)
	}
	assert.Empty(t, repo.lookedUp, "no lookup may happen for a missing code")
}

func TestEvaluateUnknownCode(t *testing.T) {
	ev := NewEvaluator(&fakePromoRepo{}, nil)

	eval, err := ev.Evaluate(context.Background(), "NOPE", 10000)
	require.NoError(t, err)
	assert.False(t, eval.Valid)
	assert.Equal(t, MsgInvalidCode, eval.Error)
	assert.Nil(t, eval.Promo)
	assert.Zero(t, eval.DiscountAmount)
}

func TestEvaluateUppercasesLookup(t *testing.T) {
	repo := &fakePromoRepo{promo: percentPromo(20)}
	ev := NewEvaluator(repo, nil).WithClock(fixedClock(evalNow))

	_, err := ev.Evaluate(context.Background(), "  summer20 ", 10000)
	require.NoError(t, err)
	require.Len(t, repo.lookedUp, 1)
	assert.Equal(t, "SUMMER20", repo.lookedUp[0])
}

func TestEvaluateNotYetActive(t *testing.T) {
	promo := percentPromo(20)
	promo.ValidFrom = timePtr(evalNow.Add(time.Hour))
	ev := NewEvaluator(&fakePromoRepo{promo: promo}, nil).WithClock(fixedClock(evalNow))

	eval, err := ev.Evaluate(context.Background(), "SUMMER20", 10000)
	require.NoError(t, err)
	assert.False(t, eval.Valid)
	assert.Equal(t, MsgNotYetActive, eval.Error)
}

func TestEvaluateExpired(t *testing.T) {
	promo := percentPromo(20)
	promo.ValidUntil = timePtr(evalNow.Add(-time.Hour))
	ev := NewEvaluator(&fakePromoRepo{promo: promo}, nil).WithClock(fixedClock(evalNow))

	eval, err := ev.Evaluate(context.Background(), "SUMMER20", 10000)
	require.NoError(t, err)
	assert.False(t, eval.Valid)
	assert.Equal(t, MsgExpired, eval.Error)
}

func TestEvaluateExpiredWinsOverUsageLimit(t *testing.T) {
	// Window checks come before the usage cap; a code that is both
	// expired and exhausted reports expiry.
	promo := percentPromo(20)
	promo.ValidUntil = timePtr(evalNow.Add(-time.Hour))
	promo.MaxUses = intPtr(5)
	promo.CurrentUses = 5
	ev := NewEvaluator(&fakePromoRepo{promo: promo}, nil).WithClock(fixedClock(evalNow))

	eval, err := ev.Evaluate(context.Background(), "SUMMER20", 10000)
	require.NoError(t, err)
	assert.Equal(t, MsgExpired, eval.Error)
}

func TestEvaluateUsageLimit(t *testing.T) {
	promo := percentPromo(20)
	promo.MaxUses = intPtr(100)
	promo.CurrentUses = 100
	ev := NewEvaluator(&fakePromoRepo{promo: promo}, nil).WithClock(fixedClock(evalNow))

	eval, err := ev.Evaluate(context.Background(), "SUMMER20", 10000)
	require.NoError(t, err)
	assert.False(t, eval.Valid)
	assert.Equal(t, MsgUsageLimit, eval.Error)
}

func TestEvaluateMinimumOrderMessageGroupsDigits(t *testing.T) {
	promo := percentPromo(20)
	promo.MinOrderAmount = int64Ptr(2000)
	ev := NewEvaluator(&fakePromoRepo{promo: promo}, nil).WithClock(fixedClock(evalNow))

	eval, err := ev.Evaluate(context.Background(), "SUMMER20", 1500)
	require.NoError(t, err)
	assert.False(t, eval.Valid)
	assert.Equal(t, "Minimum order of 2,000 required", eval.Error)
}

func TestEvaluateMinimumOrderBoundary(t *testing.T) {
	promo := percentPromo(10)
	promo.MinOrderAmount = int64Ptr(2000)
	ev := NewEvaluator(&fakePromoRepo{promo: promo}, nil).WithClock(fixedClock(evalNow))

	// Exactly the minimum qualifies.
	eval, err := ev.Evaluate(context.Background(), "SUMMER20", 2000)
	require.NoError(t, err)
	assert.True(t, eval.Valid)
	assert.Equal(t, int64(200), eval.DiscountAmount)
}

func TestEvaluatePercentageRounds(t *testing.T) {
	ev := NewEvaluator(&fakePromoRepo{promo: percentPromo(20)}, nil).WithClock(fixedClock(evalNow))

	eval, err := ev.Evaluate(context.Background(), "SUMMER20", 11960)
	require.NoError(t, err)
	require.True(t, eval.Valid)
	assert.Equal(t, int64(2392), eval.DiscountAmount)
}

func TestEvaluatePercentageRoundsHalfAwayFromZero(t *testing.T) {
	// 15% of 1010 = 151.5, rounds to 152.
	ev := NewEvaluator(&fakePromoRepo{promo: percentPromo(15)}, nil).WithClock(fixedClock(evalNow))

	eval, err := ev.Evaluate(context.Background(), "SUMMER20", 1010)
	require.NoError(t, err)
	assert.Equal(t, int64(152), eval.DiscountAmount)
}

func TestEvaluateFixedDiscountCappedAtTotal(t *testing.T) {
	promo := &domain.PromoCode{
		ID:            "promo-2",
		Code:          "TAKE50",
		DiscountType:  domain.DiscountFixed,
		DiscountValue: 5000,
		IsActive:      true,
	}
	ev := NewEvaluator(&fakePromoRepo{promo: promo}, nil).WithClock(fixedClock(evalNow))

	eval, err := ev.Evaluate(context.Background(), "TAKE50", 3000)
	require.NoError(t, err)
	require.True(t, eval.Valid)
	assert.Equal(t, int64(3000), eval.DiscountAmount, "fixed discount never exceeds the total")

	eval, err = ev.Evaluate(context.Background(), "TAKE50", 20000)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), eval.DiscountAmount)
}

func TestEvaluateValidResult(t *testing.T) {
	promo := percentPromo(20)
	promo.Description = "Summer opening"
	promo.StripeCouponID = "coup_123"
	repo := &fakePromoRepo{promo: promo}
	ev := NewEvaluator(repo, nil).WithClock(fixedClock(evalNow))

	eval, err := ev.Evaluate(context.Background(), "SUMMER20", 10000)
	require.NoError(t, err)
	require.True(t, eval.Valid)
	assert.Empty(t, eval.Error)
	require.NotNil(t, eval.Promo)
	assert.Equal(t, "promo-1", eval.Promo.ID)
	assert.Equal(t, "SUMMER20", eval.Promo.Code)
	assert.Equal(t, "coup_123", eval.Promo.StripeCouponID)
	assert.Equal(t, int64(2000), eval.DiscountAmount)
}

func TestEvaluateZeroDiscountStaysOnTheWire(t *testing.T) {
	// 1% of 10 rounds to 0. The code is still valid and the response
	// must carry an explicit zero, not drop the field.
	ev := NewEvaluator(&fakePromoRepo{promo: percentPromo(1)}, nil).WithClock(fixedClock(evalNow))

	eval, err := ev.Evaluate(context.Background(), "SUMMER20", 10)
	require.NoError(t, err)
	require.True(t, eval.Valid)
	assert.Zero(t, eval.DiscountAmount)

	body, err := json.Marshal(eval)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"discountAmount":0`)
}

func TestEvaluateIsReadOnly(t *testing.T) {
	promo := percentPromo(20)
	promo.MaxUses = intPtr(10)
	promo.CurrentUses = 9
	repo := &fakePromoRepo{promo: promo}
	ev := NewEvaluator(repo, nil).WithClock(fixedClock(evalNow))

	for i := 0; i < 3; i++ {
		eval, err := ev.Evaluate(context.Background(), "SUMMER20", 10000)
		require.NoError(t, err)
		assert.True(t, eval.Valid, "evaluation must not consume uses")
	}
	assert.Zero(t, repo.mutations)
	assert.Equal(t, 9, promo.CurrentUses)
}

func TestEvaluateStorageFault(t *testing.T) {
	repo := &fakePromoRepo{err: errors.New("connection reset")}
	ev := NewEvaluator(repo, nil)

	eval, err := ev.Evaluate(context.Background(), "SUMMER20", 10000)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInternal))
	assert.False(t, eval.Valid)
	assert.Empty(t, eval.Error, "a fault is not a business outcome")
}
