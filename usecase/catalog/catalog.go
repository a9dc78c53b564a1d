package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

// UseCase serves the public activity catalog.
type UseCase struct {
	activities repository.ActivityRepository
	logger     *zap.Logger
}

func New(activities repository.ActivityRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		activities: activities,
		logger:     logger,
	}
}

func (uc *UseCase) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	return uc.activities.ListPublished(ctx)
}

func (uc *UseCase) GetActivity(ctx context.Context, idOrSlug string) (*domain.Activity, error) {
	if idOrSlug == "" {
		return nil, domain.ErrInvalidPayload
	}
	activity, err := uc.activities.GetByID(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if !activity.IsPublished {
		return nil, domain.ErrActivityNotFound
	}
	return activity, nil
}
