package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/autocv/internal/metrics"
)

// RegisterRoutes mounts the API on app.
func RegisterRoutes(app *fiber.App, scoreHandler *ScoreHandler, reportHandler *ReportHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/score-resume", scoreHandler.HandleScoreResume)
	api.Get("/report/:id", reportHandler.HandleGetReport)
	api.Get("/report/:id/similar", reportHandler.HandleSimilarReports)

	app.Get("/metrics", metrics.MetricsHandler())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AutoCV Resume Scoring API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/score-resume",
				"GET /api/v1/report/:id",
				"GET /api/v1/report/:id/similar",
				"GET /metrics",
			},
		})
	})
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
