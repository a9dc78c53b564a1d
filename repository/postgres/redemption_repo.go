package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

type redemptionRepository struct {
	pool *pgxpool.Pool
}

// NewRedemptionRepository returns a Postgres-backed RedemptionRepository.
func NewRedemptionRepository(pool *pgxpool.Pool) repository.RedemptionRepository {
	return &redemptionRepository{pool: pool}
}

// Record inserts the redemption and bumps the promo usage counter in one
// transaction. This is the only place current_uses is written.
func (r *redemptionRepository) Record(ctx context.Context, redemption *domain.PromoRedemption) error {
	if redemption == nil || redemption.PromoID == "" {
		return domain.ErrInvalidPayload
	}
	if redemption.ID == "" {
		redemption.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insert = `
	INSERT INTO promo_redemptions (id, promo_id, booking_id, amount)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (booking_id) DO NOTHING
	`
	tag, err := tx.Exec(ctx, insert, redemption.ID, redemption.PromoID, redemption.BookingID, redemption.Amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// already recorded for this booking
		return tx.Commit(ctx)
	}

	const bump = `
	UPDATE promo_codes
	SET current_uses = current_uses + 1, updated_at = NOW()
	WHERE id = $1
	`
	if _, err := tx.Exec(ctx, bump, redemption.PromoID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
