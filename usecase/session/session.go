package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/internal/auth"
	"github.com/ridgelinepark/backend/repository"
)

var errBadCredentials = domain.NewError(domain.ErrCodeUnauthorized, "invalid email or password")

// LoginResult is returned to a successfully authenticated admin.
type LoginResult struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	Admin     domain.AdminIdentity `json:"admin"`
}

// UseCase handles admin login and logout. Logins create a Redis session
// and a JWT referencing it; logout deletes the session, which revokes the
// token immediately.
type UseCase struct {
	admins   repository.AdminDirectory
	sessions repository.SessionRepository
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

func New(admins repository.AdminDirectory, sessions repository.SessionRepository, tokens *auth.TokenManager, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		admins:   admins,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *UseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, errBadCredentials
	}

	admin, err := uc.admins.GetByEmail(ctx, email)
	if err != nil {
		// same answer for unknown email and wrong password
		return nil, errBadCredentials
	}
	if !admin.IsActive {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, "admin account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials
	}

	now := time.Now()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		AccountID: admin.AccountID,
		Email:     admin.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.tokens.TTL()),
	}
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(admin.AccountID, admin.Email, sess.ID, now)
	if err != nil {
		_ = uc.sessions.Delete(ctx, sess.ID)
		return nil, err
	}

	uc.logger.Info("admin logged in", zap.String("admin_id", admin.ID))
	return &LoginResult{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		Admin:     admin.Identity(),
	}, nil
}

// Logout revokes the session referenced by the bearer token. An already
// invalid token is treated as logged out.
func (uc *UseCase) Logout(ctx context.Context, token string) error {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return nil
	}
	return uc.sessions.Delete(ctx, claims.SessionID)
}
