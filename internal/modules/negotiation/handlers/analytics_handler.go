package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/services"
	"github.com/cobranzia/debt-negotiation-be/internal/shared/utils"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) GetGeneralMetrics(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("companyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "companyId must be a UUID"})
	}

	metrics, err := h.service.GetGeneralMetrics(c.Context(), companyID)
	if err != nil {
		utils.LogError("failed to compute metrics", err, map[string]interface{}{"company_id": companyID.String()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute metrics"})
	}
	return c.JSON(metrics)
}

func (h *AnalyticsHandler) GetTrend(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("companyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "companyId must be a UUID"})
	}

	trend, err := h.service.GetTrend(c.Context(), companyID)
	if err != nil {
		utils.LogError("failed to compute trend", err, map[string]interface{}{"company_id": companyID.String()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute trend"})
	}
	return c.JSON(trend)
}
