package repository

import (
	"context"
	"time"

	"github.com/ridgelinepark/backend/domain"
)

type BookingFilter struct {
	Status string
	Limit  int
	Offset int
}

type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByStripeSession(ctx context.Context, sessionID string) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int, error)

	CountByStatus(ctx context.Context, status string) (int, error)
	CountAll(ctx context.Context) (int, error)
	CountUpcoming(ctx context.Context, from time.Time) (int, error)
	RevenueSince(ctx context.Context, from time.Time) (int64, error)
}
