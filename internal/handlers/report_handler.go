package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/autocv/internal/models"
	"alfredoptarigan/autocv/internal/repositories"
	"alfredoptarigan/autocv/internal/services"
)

type ReportHandler struct {
	evaluator services.EvaluatorService
}

func NewReportHandler(evaluator services.EvaluatorService) *ReportHandler {
	return &ReportHandler{
		evaluator: evaluator,
	}
}

func (h *ReportHandler) HandleGetReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid report ID format",
		})
	}

	report, err := h.evaluator.GetReport(c.UserContext(), reportID)
	if err != nil {
		return h.lookupError(c, err)
	}

	return c.JSON(report)
}

func (h *ReportHandler) HandleSimilarReports(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid report ID format",
		})
	}

	limit := c.QueryInt("limit", services.DefaultSimilarLimit)

	results, err := h.evaluator.SimilarReports(c.UserContext(), reportID, limit)
	if err != nil {
		return h.lookupError(c, err)
	}

	return c.JSON(models.SimilarReportsResponse{
		ID:      reportID.String(),
		Results: results,
	})
}

func (h *ReportHandler) lookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrReportNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Report not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
