package directory

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

// UseCase manages admin accounts. Every operation here sits behind the
// superadmin gate; a deactivated account is denied on its next request
// because the gate re-reads the directory each time.
type UseCase struct {
	admins repository.AdminDirectory
	logger *zap.Logger
}

func New(admins repository.AdminDirectory, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		admins: admins,
		logger: logger,
	}
}

func (uc *UseCase) List(ctx context.Context) ([]domain.Admin, error) {
	return uc.admins.List(ctx)
}

func (uc *UseCase) Create(ctx context.Context, email, password string, role domain.Role) (*domain.Admin, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewError(domain.ErrCodeInvalid, "valid email is required")
	}
	if len(password) < 8 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "password must be at least 8 characters")
	}
	if !role.Known() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		Email:        email,
		Role:         role,
		IsActive:     true,
		PasswordHash: string(hash),
	}
	created, err := uc.admins.Create(ctx, admin)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("admin account created", zap.String("admin_id", created.ID), zap.String("role", string(role)))
	return created, nil
}

// Update changes role and active flag. The acting superadmin cannot
// deactivate or demote their own account.
func (uc *UseCase) Update(ctx context.Context, actor *domain.AdminIdentity, id string, role domain.Role, isActive bool) (*domain.Admin, error) {
	if id == "" {
		return nil, domain.ErrInvalidPayload
	}
	if !role.Known() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown role")
	}
	if actor != nil && actor.ID == id && (!isActive || role != domain.RoleSuperAdmin) {
		return nil, domain.NewError(domain.ErrCodeConflict, "cannot demote or disable your own account")
	}

	target, err := uc.admins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target.Role = role
	target.IsActive = isActive
	if err := uc.admins.Update(ctx, target); err != nil {
		return nil, err
	}
	uc.logger.Info("admin account updated",
		zap.String("admin_id", id),
		zap.String("role", string(role)),
		zap.Bool("is_active", isActive))
	return target, nil
}

func (uc *UseCase) Delete(ctx context.Context, actor *domain.AdminIdentity, id string) error {
	if id == "" {
		return domain.ErrInvalidPayload
	}
	if actor != nil && actor.ID == id {
		return domain.NewError(domain.ErrCodeConflict, "cannot delete your own account")
	}
	return uc.admins.Delete(ctx, id)
}
