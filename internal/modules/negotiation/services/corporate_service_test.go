package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobranzia/debt-negotiation-be/internal/core/cache"
	"github.com/cobranzia/debt-negotiation-be/internal/core/kb"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/models"
)

type fakeCorporateRepo struct {
	policies  []models.NegotiationPolicy
	responses []models.CustomResponse
}

func (f *fakeCorporateRepo) GetClient(ctx context.Context, id uuid.UUID) (*models.CorporateClient, error) {
	return &models.CorporateClient{ID: id, Name: "Banco Norte"}, nil
}

func (f *fakeCorporateRepo) UpsertPolicy(ctx context.Context, policy *models.NegotiationPolicy) error {
	for i := range f.policies {
		f.policies[i].IsActive = false
	}
	policy.IsActive = true
	f.policies = append(f.policies, *policy)
	return nil
}

func (f *fakeCorporateRepo) CreateCustomResponse(ctx context.Context, resp *models.CustomResponse) error {
	f.responses = append(f.responses, *resp)
	return nil
}

func TestUpdateLimitsInvalidatesKnowledgeCache(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	clientID := uuid.New()

	// Stale cached knowledge that the write must drop.
	store.Set(ctx, "kb:corporate:"+clientID.String(), []byte("{}"), time.Minute)

	repo := &fakeCorporateRepo{}
	svc := NewCorporateService(repo, kb.NewResolver(nil, store))

	limits := kb.DefaultLimits()
	limits.MaxDiscountPercent = 25

	policy, err := svc.UpdateLimits(ctx, clientID, limits)
	require.NoError(t, err)
	assert.Equal(t, 25, policy.MaxDiscountPercent)
	assert.True(t, policy.IsActive)
	require.Len(t, repo.policies, 1)

	_, ok := store.Get(ctx, "kb:corporate:"+clientID.String())
	assert.False(t, ok)
}

func TestUpdateLimitsDeactivatesPriorPolicy(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()
	repo := &fakeCorporateRepo{}
	svc := NewCorporateService(repo, kb.NewResolver(nil, cache.NewMemoryStore()))

	_, err := svc.UpdateLimits(ctx, clientID, kb.DefaultLimits())
	require.NoError(t, err)
	_, err = svc.UpdateLimits(ctx, clientID, kb.DefaultLimits())
	require.NoError(t, err)

	require.Len(t, repo.policies, 2)
	assert.False(t, repo.policies[0].IsActive)
	assert.True(t, repo.policies[1].IsActive)
}

func TestAddCustomResponseInvalidatesKnowledgeCache(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	clientID := uuid.New()
	store.Set(ctx, "kb:corporate:"+clientID.String(), []byte("{}"), time.Minute)

	repo := &fakeCorporateRepo{}
	svc := NewCorporateService(repo, kb.NewResolver(nil, store))

	err := svc.AddCustomResponse(ctx, &models.CustomResponse{
		CorporateClientID: clientID,
		Trigger:           "discount_request",
		Title:             "Oferta",
	})
	require.NoError(t, err)
	require.Len(t, repo.responses, 1)

	_, ok := store.Get(ctx, "kb:corporate:"+clientID.String())
	assert.False(t, ok)
}
