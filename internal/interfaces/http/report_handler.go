package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kopsha/micro-invoicer/internal/application/usecase"
)

// ReportHandler serves the revenue report endpoint.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Revenue returns the monthly and quarterly revenue rollups.
// GET /api/reports/revenue
func (h *ReportHandler) Revenue(c *fiber.Ctx) error {
	report, err := h.uc.Revenue(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
