package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridgelinepark/backend/domain"
)

type fakeActivityRepo struct {
	activities map[string]*domain.Activity
}

func (f *fakeActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	for _, a := range f.activities {
		if a.ID == id || a.Slug == id {
			return a, nil
		}
	}
	return nil, domain.ErrActivityNotFound
}

func (f *fakeActivityRepo) ListPublished(ctx context.Context) ([]domain.Activity, error) {
	var out []domain.Activity
	for _, a := range f.activities {
		if a.IsPublished {
			out = append(out, *a)
		}
	}
	return out, nil
}

func TestGetActivityBySlug(t *testing.T) {
	uc := New(&fakeActivityRepo{activities: map[string]*domain.Activity{
		"act-1": {ID: "act-1", Slug: "canyon-zipline", Name: "Canyon Zipline", IsPublished: true},
	}}, nil)

	activity, err := uc.GetActivity(context.Background(), "canyon-zipline")
	require.NoError(t, err)
	assert.Equal(t, "act-1", activity.ID)
}

func TestGetActivityHidesUnpublished(t *testing.T) {
	uc := New(&fakeActivityRepo{activities: map[string]*domain.Activity{
		"act-1": {ID: "act-1", Slug: "winter-trail", IsPublished: false},
	}}, nil)

	_, err := uc.GetActivity(context.Background(), "winter-trail")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound),
		"an unpublished activity is indistinguishable from a missing one")
}

func TestGetActivityEmptyID(t *testing.T) {
	uc := New(&fakeActivityRepo{}, nil)

	_, err := uc.GetActivity(context.Background(), "")
	assert.Error(t, err)
}
