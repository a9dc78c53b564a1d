package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridgelinepark/backend/domain"
)

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.Session{}}
}

func (f *fakeSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (f *fakeSessionRepo) Save(ctx context.Context, session *domain.Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func TestTokenRoundTrip(t *testing.T) {
	mgr := NewTokenManager("test-secret", "ridgeline-backend", time.Hour)

	token, err := mgr.Issue("acc-1", "ops@ridgelinepark.com", "sess-1", time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, "ops@ridgelinepark.com", claims.Email)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "ridgeline-backend", claims.Issuer)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := NewTokenManager("secret-a", "", time.Hour).Issue("acc-1", "", "sess-1", time.Now())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", "", time.Hour).Parse(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenExpiredRejected(t *testing.T) {
	mgr := NewTokenManager("test-secret", "", time.Hour)
	token, err := mgr.Issue("acc-1", "", "sess-1", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = mgr.Parse(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenGarbageRejected(t *testing.T) {
	mgr := NewTokenManager("test-secret", "", time.Hour)
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := mgr.Parse(raw)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, "%q", raw)
	}
}

func TestTokenIssueRequiresIdentifiers(t *testing.T) {
	mgr := NewTokenManager("test-secret", "", time.Hour)

	_, err := mgr.Issue("", "x@y", "sess-1", time.Now())
	assert.Error(t, err)

	_, err = mgr.Issue("acc-1", "x@y", "", time.Now())
	assert.Error(t, err)
}

func TestVerifierChecksSession(t *testing.T) {
	mgr := NewTokenManager("test-secret", "", time.Hour)
	sessions := newFakeSessionRepo()
	verifier := NewVerifier(mgr, sessions)

	token, err := mgr.Issue("acc-1", "ops@ridgelinepark.com", "sess-1", time.Now())
	require.NoError(t, err)

	// No session yet: the token alone is not enough.
	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, sessions.Save(context.Background(), &domain.Session{
		ID:        "sess-1",
		AccountID: "acc-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	account, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.ID)
	assert.Equal(t, "ops@ridgelinepark.com", account.Email)
}

func TestVerifierRejectsRevokedSession(t *testing.T) {
	mgr := NewTokenManager("test-secret", "", time.Hour)
	sessions := newFakeSessionRepo()
	verifier := NewVerifier(mgr, sessions)

	token, err := mgr.Issue("acc-1", "", "sess-1", time.Now())
	require.NoError(t, err)
	require.NoError(t, sessions.Save(context.Background(), &domain.Session{
		ID:        "sess-1",
		AccountID: "acc-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, sessions.Delete(context.Background(), "sess-1"))

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "deleting the session revokes the token")
}

func TestVerifierRejectsExpiredSession(t *testing.T) {
	mgr := NewTokenManager("test-secret", "", time.Hour)
	sessions := newFakeSessionRepo()
	verifier := NewVerifier(mgr, sessions)

	token, err := mgr.Issue("acc-1", "", "sess-1", time.Now())
	require.NoError(t, err)
	require.NoError(t, sessions.Save(context.Background(), &domain.Session{
		ID:        "sess-1",
		AccountID: "acc-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifierRejectsAccountMismatch(t *testing.T) {
	mgr := NewTokenManager("test-secret", "", time.Hour)
	sessions := newFakeSessionRepo()
	verifier := NewVerifier(mgr, sessions)

	token, err := mgr.Issue("acc-1", "", "sess-1", time.Now())
	require.NoError(t, err)
	require.NoError(t, sessions.Save(context.Background(), &domain.Session{
		ID:        "sess-1",
		AccountID: "acc-other",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
