package middleware

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/pkg/httpcontext"
	"github.com/ridgelinepark/backend/usecase/authgate"
)

type stubVerifier struct {
	account *domain.Account
	err     error
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (*domain.Account, error) {
	return s.account, s.err
}

type stubDirectory struct {
	admin *domain.Admin
	err   error
}

func (s *stubDirectory) GetByAccountID(ctx context.Context, accountID string) (*domain.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.admin, nil
}

func (s *stubDirectory) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return nil, domain.ErrAdminNotFound
}

func (s *stubDirectory) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	return nil, domain.ErrAdminNotFound
}

func (s *stubDirectory) List(ctx context.Context) ([]domain.Admin, error) { return nil, nil }

func (s *stubDirectory) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	return admin, nil
}

func (s *stubDirectory) Update(ctx context.Context, admin *domain.Admin) error { return nil }
func (s *stubDirectory) Delete(ctx context.Context, id string) error           { return nil }
func (s *stubDirectory) Count(ctx context.Context) (int, error)                { return 0, nil }

func gateWith(role domain.Role, verifyErr error) *AdminGate {
	verifier := &stubVerifier{account: &domain.Account{ID: "acc-1"}, err: verifyErr}
	directory := &stubDirectory{admin: &domain.Admin{
		ID:        "adm-1",
		AccountID: "acc-1",
		Email:     "ops@ridgelinepark.com",
		Role:      role,
		IsActive:  true,
	}}
	gate := authgate.New(verifier, directory, nil)
	return NewAdminGate(gate, httpcontext.NewAdapter(time.Second), nil)
}

func runGuarded(t *testing.T, guarded fasthttp.RequestHandler, authorization string) *fasthttp.RequestCtx {
	t.Helper()
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI("/api/v1/admin/dashboard")
	if authorization != "" {
		ctx.Request.Header.Set("Authorization", authorization)
	}
	guarded(ctx)
	return ctx
}

func TestRequireAdminMissingHeader(t *testing.T) {
	m := gateWith(domain.RoleAdmin, nil)

	called := false
	guarded := m.RequireAdmin(func(ctx *fasthttp.RequestCtx) { called = true })

	ctx := runGuarded(t, guarded, "")
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"error":"missing or invalid authorization header"}`, string(ctx.Response.Body()))
	assert.False(t, called)
}

func TestRequireAdminBadToken(t *testing.T) {
	m := gateWith(domain.RoleAdmin, domain.ErrUnauthorized)

	called := false
	guarded := m.RequireAdmin(func(ctx *fasthttp.RequestCtx) { called = true })

	ctx := runGuarded(t, guarded, "Bearer bogus")
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"error":"invalid or expired token"}`, string(ctx.Response.Body()))
	assert.False(t, called)
}

func TestRequireSuperAdminForbidsLowerTier(t *testing.T) {
	m := gateWith(domain.RoleAdmin, nil)

	called := false
	guarded := m.RequireSuperAdmin(func(ctx *fasthttp.RequestCtx) { called = true })

	ctx := runGuarded(t, guarded, "Bearer valid")
	assert.Equal(t, http.StatusForbidden, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"error":"Superadmin access required"}`, string(ctx.Response.Body()))
	assert.False(t, called)
}

func TestRequireAdminAttachesIdentity(t *testing.T) {
	m := gateWith(domain.RoleStaff, nil)

	var seen *domain.AdminIdentity
	guarded := m.RequireAdmin(func(ctx *fasthttp.RequestCtx) {
		seen = IdentityFromRequest(ctx)
	})

	ctx := runGuarded(t, guarded, "Bearer valid")
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	require.NotNil(t, seen)
	assert.Equal(t, "adm-1", seen.ID)
	assert.Equal(t, domain.RoleStaff, seen.Role)
}

func TestRequireSuperAdminAdmitsSuperAdmin(t *testing.T) {
	m := gateWith(domain.RoleSuperAdmin, nil)

	called := false
	guarded := m.RequireSuperAdmin(func(ctx *fasthttp.RequestCtx) { called = true })

	ctx := runGuarded(t, guarded, "Bearer valid")
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.True(t, called)
}

func TestIdentityFromRequestUnguardedRoute(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	assert.Nil(t, IdentityFromRequest(ctx))
}
