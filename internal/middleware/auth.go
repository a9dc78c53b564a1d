package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/api/transport"
	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/pkg/httpcontext"
	"github.com/ridgelinepark/backend/usecase/authgate"
)

const identityKey = "admin_identity"

// AdminGate adapts the auth gate to fasthttp middleware. Denials use the
// fixed wire shape {"error": <reason>}: 401 for authentication failures,
// 403 when the identity is authenticated but below the required tier.
type AdminGate struct {
	gate    *authgate.Gate
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func NewAdminGate(gate *authgate.Gate, adapter *httpcontext.Adapter, logger *zap.Logger) *AdminGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminGate{
		gate:    gate,
		adapter: adapter,
		logger:  logger,
	}
}

// RequireAdmin admits any active admin.
func (m *AdminGate) RequireAdmin(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return m.require(domain.RoleWriter, next)
}

// RequireSuperAdmin admits only the superadmin tier.
func (m *AdminGate) RequireSuperAdmin(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return m.require(domain.RoleSuperAdmin, next)
}

func (m *AdminGate) require(role domain.Role, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		stdCtx, cancel := m.adapter.Attach(ctx)
		defer cancel()

		header := string(ctx.Request.Header.Peek("Authorization"))
		identity, err := m.gate.Authenticate(stdCtx, header)
		if err != nil {
			m.deny(ctx, err)
			return
		}
		if err := m.gate.RequireRole(identity, role); err != nil {
			m.deny(ctx, err)
			return
		}

		ctx.SetUserValue(identityKey, identity)
		next(ctx)
	}
}

func (m *AdminGate) deny(ctx *fasthttp.RequestCtx, err error) {
	status := http.StatusUnauthorized
	if domain.IsDomainError(err, domain.ErrCodeForbidden) {
		status = http.StatusForbidden
	}
	reason := "Unauthorized"
	var dErr *domain.Error
	if errors.As(err, &dErr) && dErr.Message != "" {
		reason = dErr.Message
	}

	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(transport.ErrorBody{Error: reason})
	ctx.SetBody(body)
}

// IdentityFromRequest returns the identity resolved by the gate, or nil
// on an unguarded route.
func IdentityFromRequest(ctx *fasthttp.RequestCtx) *domain.AdminIdentity {
	identity, _ := ctx.UserValue(identityKey).(*domain.AdminIdentity)
	return identity
}
