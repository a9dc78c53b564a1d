package repository

import (
	"context"

	"github.com/ridgelinepark/backend/domain"
)

// TokenVerifier turns an opaque bearer token into a verified account
// identity, or an error when the token is invalid, expired or revoked.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Account, error)
}
