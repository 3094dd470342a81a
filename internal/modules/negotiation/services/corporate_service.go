package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/cobranzia/debt-negotiation-be/internal/core/kb"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/models"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/repositories"
	"github.com/cobranzia/debt-negotiation-be/internal/shared/utils"
)

// CorporateService owns policy and template writes. Every write
// invalidates that client's cached knowledge, never anyone else's.
type CorporateService struct {
	repo     repositories.CorporateRepo
	resolver *kb.Resolver
}

func NewCorporateService(repo repositories.CorporateRepo, resolver *kb.Resolver) *CorporateService {
	return &CorporateService{repo: repo, resolver: resolver}
}

func (s *CorporateService) UpdateLimits(ctx context.Context, corporateClientID uuid.UUID, limits kb.NegotiationLimits) (*models.NegotiationPolicy, error) {
	policy := &models.NegotiationPolicy{
		CorporateClientID:  corporateClientID,
		MaxDiscountPercent: limits.MaxDiscountPercent,
		MaxTermMonths:      limits.MaxTermMonths,
		ConversationLength: limits.EscalationThresholds.ConversationLength,
		DiscountRequested:  limits.EscalationThresholds.DiscountRequested,
		TimeRequested:      limits.EscalationThresholds.TimeRequested,
	}
	if err := s.repo.UpsertPolicy(ctx, policy); err != nil {
		return nil, err
	}

	s.resolver.InvalidateCorporate(ctx, corporateClientID)
	utils.LogInfo("negotiation limits updated", map[string]interface{}{
		"corporate_client_id": corporateClientID.String(),
	})
	return policy, nil
}

func (s *CorporateService) AddCustomResponse(ctx context.Context, resp *models.CustomResponse) error {
	if err := s.repo.CreateCustomResponse(ctx, resp); err != nil {
		return err
	}
	s.resolver.InvalidateCorporate(ctx, resp.CorporateClientID)
	return nil
}
