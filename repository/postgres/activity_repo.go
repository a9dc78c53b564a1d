package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation of ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

const activityColumns = `id, slug, name, description, price, duration_minutes, capacity,
	image_url, is_published, created_at, updated_at`

func (r *activityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	// id is UUID and slug is TEXT, so a single mixed comparison cannot
	// type-resolve server-side. Pick the column from the identifier shape.
	query := `
	SELECT ` + activityColumns + `
	FROM activities
	WHERE ` + activityLookupColumn(id) + ` = $1
	`
	return scanActivity(r.pool.QueryRow(ctx, query, id))
}

func activityLookupColumn(id string) string {
	if _, err := uuid.Parse(id); err == nil {
		return "id"
	}
	return "slug"
}

func (r *activityRepository) ListPublished(ctx context.Context) ([]domain.Activity, error) {
	const query = `
	SELECT ` + activityColumns + `
	FROM activities
	WHERE is_published = true
	ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *activity)
	}
	return activities, rows.Err()
}

func scanActivity(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Activity, error) {
	var activity domain.Activity
	if err := row.Scan(
		&activity.ID,
		&activity.Slug,
		&activity.Name,
		&activity.Description,
		&activity.Price,
		&activity.DurationMin,
		&activity.Capacity,
		&activity.ImageURL,
		&activity.IsPublished,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, err
	}
	return &activity, nil
}
