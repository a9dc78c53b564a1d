package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ridgelinepark/backend/domain"
	"github.com/ridgelinepark/backend/repository"
)

// Claims carried by admin bearer tokens. The token binds a login session
// to an account; email and role are never trusted from here.
type Claims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email,omitempty"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// TokenManager issues and parses HS256 admin tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// TTL exposes the configured token lifetime so sessions can share it.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) Issue(accountID, email, sessionID string, now time.Time) (string, error) {
	if accountID == "" || sessionID == "" {
		return "", domain.ErrInvalidPayload
	}
	if now.IsZero() {
		now = time.Now()
	}
	claims := Claims{
		AccountID: accountID,
		Email:     email,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.AccountID == "" || claims.SessionID == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// Verifier is the credential-verification collaborator: a token is valid
// only while its signature checks out and its session still exists in
// Redis, so revocation takes effect without waiting for expiry.
type Verifier struct {
	tokens   *TokenManager
	sessions repository.SessionRepository
}

func NewVerifier(tokens *TokenManager, sessions repository.SessionRepository) *Verifier {
	return &Verifier{
		tokens:   tokens,
		sessions: sessions,
	}
}

func (v *Verifier) Verify(ctx context.Context, tokenString string) (*domain.Account, error) {
	claims, err := v.tokens.Parse(tokenString)
	if err != nil {
		return nil, err
	}

	session, err := v.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if session.IsExpired(time.Now()) || session.AccountID != claims.AccountID {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Account{
		ID:    claims.AccountID,
		Email: claims.Email,
	}, nil
}

var _ repository.TokenVerifier = (*Verifier)(nil)
