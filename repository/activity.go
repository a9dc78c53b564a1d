package repository

import (
	"context"

	"github.com/ridgelinepark/backend/domain"
)

type ActivityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	ListPublished(ctx context.Context) ([]domain.Activity, error)
}
