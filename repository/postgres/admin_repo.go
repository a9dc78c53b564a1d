package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository instantiates a Postgres-backed admin directory.
func NewAdminRepository(pool *pgxpool.Pool) repository.AdminDirectory {
	return &adminRepository{pool: pool}
}

const adminColumns = `id, account_id, email, role, is_active, password_hash, created_at, updated_at`

func (r *adminRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.Admin, error) {
	const query = `
	SELECT ` + adminColumns + `
	FROM admins
	WHERE account_id = $1
	`
	return scanAdmin(r.pool.QueryRow(ctx, query, accountID))
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const query = `
	SELECT ` + adminColumns + `
	FROM admins
	WHERE email = $1
	`
	return scanAdmin(r.pool.QueryRow(ctx, query, email))
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	const query = `
	SELECT ` + adminColumns + `
	FROM admins
	WHERE id = $1
	`
	return scanAdmin(r.pool.QueryRow(ctx, query, id))
}

func (r *adminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	const query = `
	SELECT ` + adminColumns + `
	FROM admins
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []domain.Admin
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, *admin)
	}
	return admins, rows.Err()
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if admin == nil {
		return nil, domain.ErrInvalidPayload
	}
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	if admin.AccountID == "" {
		admin.AccountID = uuid.NewString()
	}

	const query = `
	INSERT INTO admins (id, account_id, email, role, is_active, password_hash)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		admin.ID,
		admin.AccountID,
		admin.Email,
		string(admin.Role),
		admin.IsActive,
		admin.PasswordHash,
	).Scan(&admin.CreatedAt, &admin.UpdatedAt); err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *adminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	if admin == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE admins
	SET email = $2,
		role = $3,
		is_active = $4,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		admin.ID,
		admin.Email,
		string(admin.Role),
		admin.IsActive,
	).Scan(&admin.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAdminNotFound
		}
		return err
	}
	return nil
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM admins WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func (r *adminRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count)
	return count, err
}

func scanAdmin(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Admin, error) {
	var (
		admin     domain.Admin
		role      string
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(
		&admin.ID,
		&admin.AccountID,
		&admin.Email,
		&role,
		&admin.IsActive,
		&admin.PasswordHash,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	admin.Role = domain.Role(role)
	admin.CreatedAt = createdAt
	admin.UpdatedAt = updatedAt
	return &admin, nil
}
