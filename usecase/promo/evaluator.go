package promo

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

// Business outcome messages. These are user-facing strings, not faults.
const (
	MsgCodeRequired = "Promo code is required"
	MsgInvalidCode  = "Invalid promo code"
	MsgNotYetActive = "Promo code is not yet active"
	MsgExpired      = "Promo code has expired"
	MsgUsageLimit   = "Promo code usage limit reached"
)

// Evaluation is the business outcome of checking a promo code against an
// order total. A rejected code is a normal result, never an error.
type Evaluation struct {
	Valid          bool                 `json:"valid"`
	Error          string               `json:"error,omitempty"`
	Promo          *domain.PromoSummary `json:"promoCode,omitempty"`
	DiscountAmount int64                `json:"discountAmount"`
}

// Evaluator decides promo-code validity and computes discounts. It is a
// pure read: the single lookup plus wall-clock checks. Usage counters are
// incremented elsewhere (the redemption recorder), so concurrent
// evaluations near a usage cap can all pass the cap check.
type Evaluator struct {
	promos  repository.PromoRepository
	logger  *zap.Logger
	now     func() time.Time
	printer *message.Printer
}

func NewEvaluator(promos repository.PromoRepository, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		promos:  promos,
		logger:  logger,
		now:     time.Now,
		printer: message.NewPrinter(language.English),
	}
}

// WithClock overrides the time source. Used by tests.
func (e *Evaluator) WithClock(now func() time.Time) *Evaluator {
	if now != nil {
		e.now = now
	}
	return e
}

// Evaluate runs the checks in a fixed short-circuit order: presence,
// lookup, activation window, usage cap, minimum order, discount. The
// returned error is non-nil only for storage faults.
func (e *Evaluator) Evaluate(ctx context.Context, code string, orderTotal int64) (Evaluation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return rejected(MsgCodeRequired), nil
	}

	promo, err := e.promos.GetActiveByCode(ctx, strings.ToUpper(code))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return rejected(MsgInvalidCode), nil
		}
		e.logger.Error("promo lookup failed", zap.String("code", code), zap.Error(err))
		return Evaluation{}, domain.WrapError(domain.ErrCodeInternal, "promo lookup failed", err)
	}

	now := e.now()
	switch {
	case promo.ValidFrom != nil && promo.ValidFrom.After(now):
		return rejected(MsgNotYetActive), nil
	case promo.ValidUntil != nil && promo.ValidUntil.Before(now):
		return rejected(MsgExpired), nil
	case promo.Exhausted():
		return rejected(MsgUsageLimit), nil
	case promo.MinOrderAmount != nil && orderTotal < *promo.MinOrderAmount:
		return rejected(e.printer.Sprintf("Minimum order of %d required", *promo.MinOrderAmount)), nil
	}

	summary := promo.Summary()
	return Evaluation{
		Valid:          true,
		Promo:          &summary,
		DiscountAmount: discountFor(promo, orderTotal),
	}, nil
}

// discountFor computes the discount in minor units. A percentage rounds
// half away from zero; a fixed discount never exceeds the order total.
func discountFor(promo *domain.PromoCode, orderTotal int64) int64 {
	if promo.DiscountType == domain.DiscountPercentage {
		return int64(math.Round(float64(orderTotal) * promo.DiscountValue / 100))
	}
	fixed := int64(promo.DiscountValue)
	if fixed > orderTotal {
		return orderTotal
	}
	return fixed
}

func rejected(message string) Evaluation {
	return Evaluation{Valid: false, Error: message}
}
