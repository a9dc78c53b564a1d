package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
	"github.com/ridgelinepark/backend/usecase"
	promoUC "github.com/ridgelinepark/backend/usecase/promo"
)

// CheckoutSession is the payment provider's handle for collecting payment
// on a booking.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentProvider creates hosted checkout sessions. The production
// implementation wraps the Stripe client.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, booking *domain.Booking, activityName string) (*CheckoutSession, error)
}

// CreateInput carries a public checkout request.
type CreateInput struct {
	ActivityID    string
	BookingDate   time.Time
	PartySize     int
	CustomerName  string
	CustomerEmail string
	PromoCode     string
}

// CreateResult pairs the stored booking with the checkout redirect.
type CreateResult struct {
	Booking     *domain.Booking `json:"booking"`
	CheckoutURL string          `json:"checkout_url"`
}

// UseCase drives the booking lifecycle: checkout creation, webhook
// transitions and the admin management surface.
type UseCase struct {
	bookings    repository.BookingRepository
	activities  repository.ActivityRepository
	evaluator   *promoUC.Evaluator
	payments    PaymentProvider
	redemptions usecase.RedemptionRecorder
	logger      *zap.Logger
}

func New(
	bookings repository.BookingRepository,
	activities repository.ActivityRepository,
	evaluator *promoUC.Evaluator,
	payments PaymentProvider,
	redemptions usecase.RedemptionRecorder,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		bookings:    bookings,
		activities:  activities,
		evaluator:   evaluator,
		payments:    payments,
		redemptions: redemptions,
		logger:      logger,
	}
}

// Create prices the booking, applies an optional promo code and opens a
// checkout session. The booking row is written only after the payment
// provider accepted the session, so a provider fault leaves no orphan.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if input.ActivityID == "" || input.CustomerEmail == "" || input.CustomerName == "" {
		return nil, domain.ErrInvalidPayload
	}
	if input.BookingDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "booking date is in the past")
	}

	activity, err := uc.activities.GetByID(ctx, input.ActivityID)
	if err != nil {
		return nil, err
	}
	if !activity.IsPublished {
		return nil, domain.ErrActivityNotFound
	}
	if !activity.FitsParty(input.PartySize) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "party size exceeds activity capacity")
	}

	total := activity.Price * int64(input.PartySize)

	var (
		discount int64
		promoID  string
	)
	if input.PromoCode != "" {
		eval, err := uc.evaluator.Evaluate(ctx, input.PromoCode, total)
		if err != nil {
			return nil, err
		}
		if !eval.Valid {
			return nil, domain.NewError(domain.ErrCodeInvalid, eval.Error)
		}
		discount = eval.DiscountAmount
		promoID = eval.Promo.ID
	}

	bk := &domain.Booking{
		ID:             uuid.NewString(),
		ActivityID:     activity.ID,
		CustomerName:   input.CustomerName,
		CustomerEmail:  input.CustomerEmail,
		BookingDate:    input.BookingDate,
		PartySize:      input.PartySize,
		TotalAmount:    total,
		DiscountAmount: discount,
		PromoCodeID:    promoID,
		Status:         domain.BookingPending,
	}

	session, err := uc.payments.CreateCheckoutSession(ctx, bk, activity.Name)
	if err != nil {
		uc.logger.Error("checkout session creation failed", zap.String("booking_id", bk.ID), zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeInternal, "payment provider unavailable", err)
	}
	bk.StripeSessionID = session.ID

	created, err := uc.bookings.Create(ctx, bk)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("booking created",
		zap.String("booking_id", created.ID),
		zap.String("activity_id", activity.ID),
		zap.Int64("amount_due", created.AmountDue()))
	return &CreateResult{
		Booking:     created,
		CheckoutURL: session.URL,
	}, nil
}

// ConfirmCheckout handles a completed checkout session: the booking moves
// to confirmed and any promo use is recorded. The recorder, not the
// evaluator, owns the usage-count increment.
func (uc *UseCase) ConfirmCheckout(ctx context.Context, stripeSessionID string) error {
	bk, err := uc.bookings.GetByStripeSession(ctx, stripeSessionID)
	if err != nil {
		return err
	}
	if !bk.IsPending() {
		// webhook retries are expected; later deliveries are no-ops
		return nil
	}
	if err := uc.bookings.UpdateStatus(ctx, bk.ID, domain.BookingConfirmed); err != nil {
		return err
	}

	if bk.PromoCodeID != "" && uc.redemptions != nil {
		redemption := &domain.PromoRedemption{
			PromoID:   bk.PromoCodeID,
			BookingID: bk.ID,
			Amount:    bk.DiscountAmount,
		}
		if err := uc.redemptions.RecordRedemption(ctx, redemption); err != nil {
			uc.logger.Error("promo redemption recording failed",
				zap.String("booking_id", bk.ID),
				zap.String("promo_id", bk.PromoCodeID),
				zap.Error(err))
		}
	}
	return nil
}

// CancelCheckout marks the booking cancelled after an expired or aborted
// checkout session.
func (uc *UseCase) CancelCheckout(ctx context.Context, stripeSessionID string) error {
	bk, err := uc.bookings.GetByStripeSession(ctx, stripeSessionID)
	if err != nil {
		return err
	}
	if !bk.IsPending() {
		return nil
	}
	return uc.bookings.UpdateStatus(ctx, bk.ID, domain.BookingCancelled)
}

func (uc *UseCase) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	return uc.bookings.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return uc.bookings.GetByID(ctx, id)
}

// SetStatus is the admin override for booking state.
func (uc *UseCase) SetStatus(ctx context.Context, id, status string) error {
	switch status {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled, domain.BookingExpired:
	default:
		return domain.NewError(domain.ErrCodeInvalid, "unknown booking status")
	}
	return uc.bookings.UpdateStatus(ctx, id, status)
}

// ExpireStale sweeps pending bookings whose checkout was never completed.
func (uc *UseCase) ExpireStale(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		olderThan = 24 * time.Hour
	}
	return uc.bookings.ExpirePendingBefore(ctx, time.Now().Add(-olderThan))
}
