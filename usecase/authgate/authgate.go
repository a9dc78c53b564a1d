package authgate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

const bearerPrefix = "Bearer "

// Failure reasons surfaced to callers. Each reason maps to exactly one
// denial path so clients can tell them apart.
const (
	ReasonMissingHeader = "missing or invalid authorization header"
	ReasonInvalidToken  = "invalid or expired token"
	ReasonNotAdmin      = "user is not an admin"
	ReasonDisabled      = "admin account is disabled"
	ReasonGeneric       = "authentication failed"
)

var roleRequiredMessages = map[domain.Role]string{
	domain.RoleWriter:     "Writer access required",
	domain.RoleStaff:      "Staff access required",
	domain.RoleAdmin:      "Admin access required",
	domain.RoleSuperAdmin: "Superadmin access required",
}

// Gate resolves bearer credentials to admin identities and enforces role
// tiers. It is stateless; every call verifies the credential and reads
// the directory fresh, so deactivating an admin takes effect immediately
// without invalidating the underlying credential.
type Gate struct {
	verifier  repository.TokenVerifier
	directory repository.AdminDirectory
	logger    *zap.Logger
}

func New(verifier repository.TokenVerifier, directory repository.AdminDirectory, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		verifier:  verifier,
		directory: directory,
		logger:    logger,
	}
}

// Authenticate turns the raw Authorization header value into an admin
// identity. The order is load-bearing: header shape, then credential
// verification, then directory lookup, then activity check. Every denial
// is a domain.Error with code UNAUTHORIZED carrying one of the Reason
// constants; nothing from the collaborators escapes raw.
func (g *Gate) Authenticate(ctx context.Context, authorization string) (identity *domain.AdminIdentity, failure error) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("authentication collaborator panicked", zap.Any("panic", r))
			identity = nil
			failure = domain.NewError(domain.ErrCodeUnauthorized, ReasonGeneric)
		}
	}()

	token, ok := bearerToken(authorization)
	if !ok {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, ReasonMissingHeader)
	}

	account, err := g.verifier.Verify(ctx, token)
	if err != nil || account == nil || account.ID == "" {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, ReasonInvalidToken)
	}

	admin, err := g.directory.GetByAccountID(ctx, account.ID)
	if err != nil || admin == nil {
		// fail closed: a lookup fault denies access like a missing record
		if err != nil && !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			g.logger.Warn("admin directory lookup failed", zap.Error(err))
		}
		return nil, domain.NewError(domain.ErrCodeUnauthorized, ReasonNotAdmin)
	}

	if !admin.IsActive {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, ReasonDisabled)
	}

	// The directory record is authoritative for id, email and role, even
	// if the credential carries a different email.
	resolved := admin.Identity()
	return &resolved, nil
}

// RequireRole centralizes the privilege decision. Authentication failures
// stay UNAUTHORIZED; an authenticated identity below the required tier is
// FORBIDDEN.
func (g *Gate) RequireRole(identity *domain.AdminIdentity, required domain.Role) error {
	if identity == nil {
		return domain.NewError(domain.ErrCodeUnauthorized, ReasonGeneric)
	}
	if identity.Role.Satisfies(required) {
		return nil
	}
	message, ok := roleRequiredMessages[required]
	if !ok {
		message = "insufficient role"
	}
	return domain.NewError(domain.ErrCodeForbidden, message)
}

func bearerToken(authorization string) (string, bool) {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return "", false
	}
	token := strings.TrimPrefix(authorization, bearerPrefix)
	if token == "" {
		return "", false
	}
	return token, true
}
