package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ridgelinepark/backend/domain"
)

type fakeDirectory struct {
	byID    map[string]*domain.Admin
	deleted []string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{byID: map[string]*domain.Admin{}}
}

func (f *fakeDirectory) GetByAccountID(ctx context.Context, accountID string) (*domain.Admin, error) {
	return nil, domain.ErrAdminNotFound
}

func (f *fakeDirectory) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return nil, domain.ErrAdminNotFound
}

func (f *fakeDirectory) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	admin, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return admin, nil
}

func (f *fakeDirectory) List(ctx context.Context) ([]domain.Admin, error) { return nil, nil }

func (f *fakeDirectory) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if admin.ID == "" {
		admin.ID = "adm-new"
	}
	f.byID[admin.ID] = admin
	return admin, nil
}

func (f *fakeDirectory) Update(ctx context.Context, admin *domain.Admin) error {
	f.byID[admin.ID] = admin
	return nil
}

func (f *fakeDirectory) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrAdminNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDirectory) Count(ctx context.Context) (int, error) { return len(f.byID), nil }

func superAdminActor() *domain.AdminIdentity {
	return &domain.AdminIdentity{ID: "adm-root", Email: "root@ridgelinepark.com", Role: domain.RoleSuperAdmin}
}

func TestCreateAdmin(t *testing.T) {
	repo := newFakeDirectory()
	uc := New(repo, nil)

	created, err := uc.Create(context.Background(), "  New.Staff@RidgelinePark.com ", "hunter2hunter2", domain.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, "new.staff@ridgelinepark.com", created.Email, "email is normalized")
	assert.Equal(t, domain.RoleStaff, created.Role)
	assert.True(t, created.IsActive)

	assert.NotEqual(t, "hunter2hunter2", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2hunter2")))
}

func TestCreateAdminValidation(t *testing.T) {
	uc := New(newFakeDirectory(), nil)

	_, err := uc.Create(context.Background(), "not-an-email", "hunter2hunter2", domain.RoleStaff)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Create(context.Background(), "ok@ridgelinepark.com", "short", domain.RoleStaff)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Create(context.Background(), "ok@ridgelinepark.com", "hunter2hunter2", domain.Role("root"))
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestUpdateAdmin(t *testing.T) {
	repo := newFakeDirectory()
	repo.byID["adm-1"] = &domain.Admin{ID: "adm-1", Role: domain.RoleWriter, IsActive: true}
	uc := New(repo, nil)

	updated, err := uc.Update(context.Background(), superAdminActor(), "adm-1", domain.RoleAdmin, false)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.False(t, updated.IsActive)
}

func TestUpdateGuardsOwnAccount(t *testing.T) {
	repo := newFakeDirectory()
	actor := superAdminActor()
	repo.byID[actor.ID] = &domain.Admin{ID: actor.ID, Role: domain.RoleSuperAdmin, IsActive: true}
	uc := New(repo, nil)

	// Self-demotion and self-deactivation are both conflicts.
	_, err := uc.Update(context.Background(), actor, actor.ID, domain.RoleAdmin, true)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))

	_, err = uc.Update(context.Background(), actor, actor.ID, domain.RoleSuperAdmin, false)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))

	// Re-affirming one's own superadmin+active state is fine.
	_, err = uc.Update(context.Background(), actor, actor.ID, domain.RoleSuperAdmin, true)
	assert.NoError(t, err)
}

func TestUpdateUnknownAdmin(t *testing.T) {
	uc := New(newFakeDirectory(), nil)

	_, err := uc.Update(context.Background(), superAdminActor(), "ghost", domain.RoleAdmin, true)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestDeleteGuardsOwnAccount(t *testing.T) {
	repo := newFakeDirectory()
	actor := superAdminActor()
	repo.byID[actor.ID] = &domain.Admin{ID: actor.ID}
	repo.byID["adm-1"] = &domain.Admin{ID: "adm-1"}
	uc := New(repo, nil)

	err := uc.Delete(context.Background(), actor, actor.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))

	require.NoError(t, uc.Delete(context.Background(), actor, "adm-1"))
	assert.Equal(t, []string{"adm-1"}, repo.deleted)
}
