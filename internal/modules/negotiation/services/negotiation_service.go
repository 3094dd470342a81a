package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/cobranzia/debt-negotiation-be/internal/core/engine"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/models"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/repositories"
)

// NegotiationService is the handler-facing facade over the orchestrator
// and the read-side repositories.
type NegotiationService struct {
	engine        *engine.Engine
	conversations repositories.ConversationRepo
	messages      repositories.MessageRepo
}

func NewNegotiationService(
	eng *engine.Engine,
	conversations repositories.ConversationRepo,
	messages repositories.MessageRepo,
) *NegotiationService {
	return &NegotiationService{
		engine:        eng,
		conversations: conversations,
		messages:      messages,
	}
}

func (s *NegotiationService) Start(ctx context.Context, proposalID uuid.UUID, corporateClientID *uuid.UUID) (*models.Conversation, error) {
	return s.engine.StartNegotiation(ctx, proposalID, corporateClientID)
}

func (s *NegotiationService) HandleInboundMessage(ctx context.Context, conversationID uuid.UUID, content string) (*models.Message, error) {
	return s.engine.ProcessTurn(ctx, conversationID, content)
}

func (s *NegotiationService) RecordOutcome(ctx context.Context, conversationID uuid.UUID, outcome string) (*models.Conversation, error) {
	return s.engine.RecordOutcome(ctx, conversationID, outcome)
}

func (s *NegotiationService) GetConversation(ctx context.Context, conversationID uuid.UUID) (*models.Conversation, error) {
	return s.conversations.GetConversation(ctx, conversationID)
}

func (s *NegotiationService) GetMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]models.Message, error) {
	return s.messages.ListByConversation(ctx, conversationID, limit)
}
