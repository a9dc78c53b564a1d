package repository

import (
	"context"

	"github.com/ridgelinepark/backend/domain"
)

// AdminDirectory is the external store of administrator accounts, roles
// and active flags. GetByAccountID is the lookup the auth gate performs
// on every request.
type AdminDirectory interface {
	GetByAccountID(ctx context.Context, accountID string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	Update(ctx context.Context, admin *domain.Admin) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
