package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

type promoRepository struct {
	pool *pgxpool.Pool
}

// NewPromoRepository returns a Postgres-backed implementation of PromoRepository.
func NewPromoRepository(pool *pgxpool.Pool) repository.PromoRepository {
	return &promoRepository{pool: pool}
}

const promoColumns = `id, code, description, discount_type, discount_value, is_active,
	valid_from, valid_until, max_uses, current_uses, min_order_amount, stripe_coupon_id,
	created_at, updated_at`

func (r *promoRepository) GetActiveByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	const query = `
	SELECT ` + promoColumns + `
	FROM promo_codes
	WHERE code = $1 AND is_active = true
	`
	return scanPromo(r.pool.QueryRow(ctx, query, strings.ToUpper(code)))
}

func (r *promoRepository) GetByID(ctx context.Context, id string) (*domain.PromoCode, error) {
	const query = `
	SELECT ` + promoColumns + `
	FROM promo_codes
	WHERE id = $1
	`
	return scanPromo(r.pool.QueryRow(ctx, query, id))
}

func (r *promoRepository) List(ctx context.Context, filter repository.PromoFilter) ([]domain.PromoCode, error) {
	const query = `
	SELECT ` + promoColumns + `
	FROM promo_codes
	WHERE ($1 = false OR is_active = true)
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.ActiveOnly, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []domain.PromoCode
	for rows.Next() {
		promo, err := scanPromo(rows)
		if err != nil {
			return nil, err
		}
		promos = append(promos, *promo)
	}
	return promos, rows.Err()
}

func (r *promoRepository) Create(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error) {
	if promo == nil {
		return nil, domain.ErrInvalidPayload
	}
	if promo.ID == "" {
		promo.ID = uuid.NewString()
	}
	promo.Code = strings.ToUpper(promo.Code)

	const query = `
	INSERT INTO promo_codes (id, code, description, discount_type, discount_value, is_active,
		valid_from, valid_until, max_uses, min_order_amount, stripe_coupon_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING current_uses, created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		promo.ID,
		promo.Code,
		promo.Description,
		string(promo.DiscountType),
		promo.DiscountValue,
		promo.IsActive,
		promo.ValidFrom,
		promo.ValidUntil,
		promo.MaxUses,
		promo.MinOrderAmount,
		promo.StripeCouponID,
	).Scan(&promo.CurrentUses, &promo.CreatedAt, &promo.UpdatedAt); err != nil {
		return nil, err
	}
	return promo, nil
}

func (r *promoRepository) Update(ctx context.Context, promo *domain.PromoCode) error {
	if promo == nil {
		return domain.ErrInvalidPayload
	}
	promo.Code = strings.ToUpper(promo.Code)

	const query = `
	UPDATE promo_codes
	SET code = $2,
		description = $3,
		discount_type = $4,
		discount_value = $5,
		is_active = $6,
		valid_from = $7,
		valid_until = $8,
		max_uses = $9,
		min_order_amount = $10,
		stripe_coupon_id = $11,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		promo.ID,
		promo.Code,
		promo.Description,
		string(promo.DiscountType),
		promo.DiscountValue,
		promo.IsActive,
		promo.ValidFrom,
		promo.ValidUntil,
		promo.MaxUses,
		promo.MinOrderAmount,
		promo.StripeCouponID,
	).Scan(&promo.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPromoNotFound
		}
		return err
	}
	return nil
}

func (r *promoRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM promo_codes WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPromoNotFound
	}
	return nil
}

func (r *promoRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM promo_codes WHERE is_active = true`).Scan(&count)
	return count, err
}

func scanPromo(row interface {
	Scan(dest ...interface{}) error
}) (*domain.PromoCode, error) {
	var (
		promo        domain.PromoCode
		discountType string
	)
	if err := row.Scan(
		&promo.ID,
		&promo.Code,
		&promo.Description,
		&discountType,
		&promo.DiscountValue,
		&promo.IsActive,
		&promo.ValidFrom,
		&promo.ValidUntil,
		&promo.MaxUses,
		&promo.CurrentUses,
		&promo.MinOrderAmount,
		&promo.StripeCouponID,
		&promo.CreatedAt,
		&promo.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPromoNotFound
		}
		return nil, err
	}
	promo.DiscountType = domain.DiscountType(discountType)
	return &promo, nil
}
