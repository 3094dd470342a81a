package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/cobranzia/debt-negotiation-be/internal/core/kb"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/models"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/services"
	"github.com/cobranzia/debt-negotiation-be/internal/shared/utils"
)

type CorporateHandler struct {
	service *services.CorporateService
}

func NewCorporateHandler(service *services.CorporateService) *CorporateHandler {
	return &CorporateHandler{service: service}
}

type updateLimitsRequest struct {
	MaxDiscountPercent int `json:"max_discount_percent"`
	MaxTermMonths      int `json:"max_term_months"`
	ConversationLength int `json:"conversation_length"`
	DiscountRequested  int `json:"discount_requested"`
	TimeRequested      int `json:"time_requested"`
}

// UpdateLimits replaces the active negotiation policy for a corporate
// client. Unset thresholds fall back to the documented defaults.
func (h *CorporateHandler) UpdateLimits(c *fiber.Ctx) error {
	corporateClientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be a UUID"})
	}

	var req updateLimitsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	limits := kb.DefaultLimits()
	if req.MaxDiscountPercent > 0 {
		limits.MaxDiscountPercent = req.MaxDiscountPercent
	}
	if req.MaxTermMonths > 0 {
		limits.MaxTermMonths = req.MaxTermMonths
	}
	if req.ConversationLength > 0 {
		limits.EscalationThresholds.ConversationLength = req.ConversationLength
	}
	if req.DiscountRequested > 0 {
		limits.EscalationThresholds.DiscountRequested = req.DiscountRequested
	}
	if req.TimeRequested > 0 {
		limits.EscalationThresholds.TimeRequested = req.TimeRequested
	}

	policy, err := h.service.UpdateLimits(c.Context(), corporateClientID, limits)
	if err != nil {
		utils.LogError("failed to update limits", err, map[string]interface{}{
			"corporate_client_id": corporateClientID.String(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update limits"})
	}
	return c.JSON(policy)
}

type customResponseRequest struct {
	Trigger string   `json:"trigger"`
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Tags    []string `json:"tags,omitempty"`
}

func (h *CorporateHandler) AddCustomResponse(c *fiber.Ctx) error {
	corporateClientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be a UUID"})
	}

	var req customResponseRequest
	if err := c.BodyParser(&req); err != nil || req.Trigger == "" || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "trigger and body are required"})
	}

	content, err := json.Marshal(map[string]string{"body": req.Body})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	resp := &models.CustomResponse{
		CorporateClientID: corporateClientID,
		Trigger:           req.Trigger,
		Title:             req.Title,
		Content:           datatypes.JSON(content),
		Tags:              pq.StringArray(req.Tags),
		IsActive:          true,
	}
	if err := h.service.AddCustomResponse(c.Context(), resp); err != nil {
		utils.LogError("failed to create custom response", err, map[string]interface{}{
			"corporate_client_id": corporateClientID.String(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create custom response"})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
