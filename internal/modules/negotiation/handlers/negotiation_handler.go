package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cobranzia/debt-negotiation-be/internal/core/engine"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/services"
	"github.com/cobranzia/debt-negotiation-be/internal/shared/utils"
)

type NegotiationHandler struct {
	service *services.NegotiationService
}

func NewNegotiationHandler(service *services.NegotiationService) *NegotiationHandler {
	return &NegotiationHandler{service: service}
}

type startNegotiationRequest struct {
	ProposalID        string  `json:"proposal_id"`
	CorporateClientID *string `json:"corporate_client_id,omitempty"`
}

// Start creates a negotiation conversation for a proposal and returns it
// together with the AI opening message already persisted.
func (h *NegotiationHandler) Start(c *fiber.Ctx) error {
	var req startNegotiationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	proposalID, err := uuid.Parse(req.ProposalID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "proposal_id must be a UUID"})
	}

	var corporateClientID *uuid.UUID
	if req.CorporateClientID != nil {
		id, err := uuid.Parse(*req.CorporateClientID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "corporate_client_id must be a UUID"})
		}
		corporateClientID = &id
	}

	conv, err := h.service.Start(c.Context(), proposalID, corporateClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "proposal not found"})
		}
		utils.LogError("failed to start negotiation", err, map[string]interface{}{"proposal_id": req.ProposalID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to start negotiation"})
	}

	return c.Status(fiber.StatusCreated).JSON(conv)
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessage runs one AI turn for an inbound debtor message.
func (h *NegotiationHandler) SendMessage(c *fiber.Ctx) error {
	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be a UUID"})
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content is required"})
	}

	reply, err := h.service.HandleInboundMessage(c.Context(), conversationID, req.Content)
	switch {
	case err == nil:
		return c.JSON(reply)
	case errors.Is(err, engine.ErrTurnInProgress):
		// The previous turn is still generating; the client may retry.
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "turn in progress", "retryable": true})
	case errors.Is(err, engine.ErrConversationClosed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conversation no longer accepts AI turns"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "conversation not found"})
	default:
		utils.LogError("failed to process turn", err, map[string]interface{}{"conversation_id": conversationID.String()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to process message", "retryable": true})
	}
}

func (h *NegotiationHandler) GetConversation(c *fiber.Ctx) error {
	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be a UUID"})
	}

	conv, err := h.service.GetConversation(c.Context(), conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "conversation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch conversation"})
	}
	return c.JSON(conv)
}

func (h *NegotiationHandler) GetMessages(c *fiber.Ctx) error {
	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be a UUID"})
	}

	messages, err := h.service.GetMessages(c.Context(), conversationID, c.QueryInt("limit", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch messages"})
	}
	return c.JSON(messages)
}

type outcomeRequest struct {
	Outcome string `json:"outcome"` // "agreed" or "rejected"
}

// RecordOutcome registers an acceptance or rejection decided outside the
// AI loop.
func (h *NegotiationHandler) RecordOutcome(c *fiber.Ctx) error {
	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be a UUID"})
	}

	var req outcomeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	conv, err := h.service.RecordOutcome(c.Context(), conversationID, req.Outcome)
	switch {
	case err == nil:
		return c.JSON(conv)
	case errors.Is(err, engine.ErrInvalidOutcome):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "outcome must be agreed or rejected"})
	case errors.Is(err, engine.ErrConversationClosed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conversation already resolved"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "conversation not found"})
	default:
		utils.LogError("failed to record outcome", err, map[string]interface{}{"conversation_id": conversationID.String()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record outcome"})
	}
}
