package handlers

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/autocv/internal/services"
)

type ScoreHandler struct {
	evaluator      services.EvaluatorService
	storageService services.StorageService
	maxFileSize    int64
	logger         *zap.Logger
}

func NewScoreHandler(
	evaluator services.EvaluatorService,
	storageService services.StorageService,
	maxFileSize int64,
	logger *zap.Logger,
) *ScoreHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreHandler{
		evaluator:      evaluator,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// HandleScoreResume accepts multipart form data with a "file" field and the
// optional "target_role" and "jd_text" fields. The upload is deleted once scored.
func (h *ScoreHandler) HandleScoreResume(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	if err := h.storageService.Validate(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": h.validationMessage(err),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save file: %v", err),
		})
	}
	defer func() {
		if err := h.storageService.DeleteFile(filename); err != nil {
			h.logger.Warn("Failed to remove uploaded file", zap.String("file", filename), zap.Error(err))
		}
	}()

	resp, err := h.evaluator.ScoreResume(c.UserContext(), services.ScoreRequest{
		FilePath:   filePath,
		Filename:   filepath.Base(file.Filename),
		TargetRole: c.FormValue("target_role"),
		JDText:     c.FormValue("jd_text"),
	})
	if err != nil {
		switch {
		case services.IsParseError(err):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, services.ErrUnsupportedFormat):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid file type. Only PDF and DOCX allowed",
			})
		}
		h.logger.Error("Failed to score resume", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *ScoreHandler) validationMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrNoFileSelected):
		return "No file selected"
	case errors.Is(err, services.ErrInvalidFileType):
		return "Invalid file type. Only PDF and DOCX allowed"
	case errors.Is(err, services.ErrFileTooLarge):
		return fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize)
	}
	return err.Error()
}
