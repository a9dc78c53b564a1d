package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

// UseCase assembles the admin dashboard summary from independent read
// queries. There is no caching; every call reads live counts.
type UseCase struct {
	bookings repository.BookingRepository
	promos   repository.PromoRepository
	admins   repository.AdminDirectory
	logger   *zap.Logger
}

func New(bookings repository.BookingRepository, promos repository.PromoRepository, admins repository.AdminDirectory, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		bookings: bookings,
		promos:   promos,
		admins:   admins,
		logger:   logger,
	}
}

// Summary runs the counters one by one; the first storage fault aborts
// the whole report.
func (uc *UseCase) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	now := time.Now()
	summary := &domain.DashboardSummary{GeneratedAt: now}

	var err error
	if summary.TotalBookings, err = uc.bookings.CountAll(ctx); err != nil {
		return nil, err
	}
	if summary.PendingBookings, err = uc.bookings.CountByStatus(ctx, domain.BookingPending); err != nil {
		return nil, err
	}
	if summary.ConfirmedBookings, err = uc.bookings.CountByStatus(ctx, domain.BookingConfirmed); err != nil {
		return nil, err
	}
	if summary.CancelledBookings, err = uc.bookings.CountByStatus(ctx, domain.BookingCancelled); err != nil {
		return nil, err
	}
	if summary.Revenue, err = uc.bookings.RevenueSince(ctx, now.AddDate(0, -1, 0)); err != nil {
		return nil, err
	}
	if summary.UpcomingBookings, err = uc.bookings.CountUpcoming(ctx, now); err != nil {
		return nil, err
	}
	if summary.ActivePromoCodes, err = uc.promos.CountActive(ctx); err != nil {
		return nil, err
	}
	if summary.AdminAccounts, err = uc.admins.Count(ctx); err != nil {
		return nil, err
	}
	return summary, nil
}
