package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository returns a Postgres-backed implementation of BookingRepository.
func NewBookingRepository(pool *pgxpool.Pool) repository.BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingColumns = `id, activity_id, customer_name, customer_email, booking_date, party_size,
	total_amount, discount_amount, promo_code_id, status, stripe_session_id, metadata,
	created_at, updated_at`

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	const query = `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE id = $1
	`
	return scanBooking(r.pool.QueryRow(ctx, query, id))
}

func (r *bookingRepository) GetByStripeSession(ctx context.Context, sessionID string) (*domain.Booking, error) {
	const query = `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE stripe_session_id = $1
	`
	return scanBooking(r.pool.QueryRow(ctx, query, sessionID))
}

func (r *bookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	const query = `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE ($1 = '' OR status = $1)
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.Status, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking == nil {
		return nil, domain.ErrInvalidPayload
	}
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.Status == "" {
		booking.Status = domain.BookingPending
	}

	const query = `
	INSERT INTO bookings (id, activity_id, customer_name, customer_email, booking_date, party_size,
		total_amount, discount_amount, promo_code_id, status, stripe_session_id, metadata)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, NULLIF($11, ''), $12)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		booking.ID,
		booking.ActivityID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.BookingDate,
		booking.PartySize,
		booking.TotalAmount,
		booking.DiscountAmount,
		booking.PromoCodeID,
		booking.Status,
		booking.StripeSessionID,
		marshalMap(booking.Metadata),
	).Scan(&booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	const query = `
	UPDATE bookings
	SET status = $2, updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *bookingRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int, error) {
	const query = `
	UPDATE bookings
	SET status = $1, updated_at = NOW()
	WHERE status = $2 AND created_at < $3
	`
	tag, err := r.pool.Exec(ctx, query, domain.BookingExpired, domain.BookingPending, cutoff)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *bookingRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count)
	return count, err
}

func (r *bookingRepository) CountUpcoming(ctx context.Context, from time.Time) (int, error) {
	const query = `
	SELECT COUNT(*) FROM bookings
	WHERE status = $1 AND booking_date >= $2
	`
	var count int
	err := r.pool.QueryRow(ctx, query, domain.BookingConfirmed, from).Scan(&count)
	return count, err
}

func (r *bookingRepository) RevenueSince(ctx context.Context, from time.Time) (int64, error) {
	const query = `
	SELECT COALESCE(SUM(total_amount - discount_amount), 0) FROM bookings
	WHERE status = $1 AND created_at >= $2
	`
	var revenue int64
	err := r.pool.QueryRow(ctx, query, domain.BookingConfirmed, from).Scan(&revenue)
	return revenue, err
}

func scanBooking(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Booking, error) {
	var (
		booking   domain.Booking
		promoID   *string
		sessionID *string
		metadata  []byte
	)
	if err := row.Scan(
		&booking.ID,
		&booking.ActivityID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.BookingDate,
		&booking.PartySize,
		&booking.TotalAmount,
		&booking.DiscountAmount,
		&promoID,
		&booking.Status,
		&sessionID,
		&metadata,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	if promoID != nil {
		booking.PromoCodeID = *promoID
	}
	if sessionID != nil {
		booking.StripeSessionID = *sessionID
	}
	if len(metadata) > 0 {
		_ = json.Unmarshal(metadata, &booking.Metadata)
	}
	return &booking, nil
}
