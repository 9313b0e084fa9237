package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/haulink/trucker-backend/internal/dto"
	"github.com/haulink/trucker-backend/internal/services"
)

// JobHandler exposes the batch jobs to the external cron scheduler.
type JobHandler struct {
	moderationService *services.ModerationService
	missionService    *services.MissionService
}

func NewJobHandler(moderationService *services.ModerationService, missionService *services.MissionService) *JobHandler {
	return &JobHandler{
		moderationService: moderationService,
		missionService:    missionService,
	}
}

func (h *JobHandler) ProcessReports(c *fiber.Ctx) error {
	processed, err := h.moderationService.ProcessPendingReports(c.Context())
	if err != nil {
		if errors.Is(err, services.ErrJobAlreadyRunning) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(dto.ProcessReportsResponse{
		Success:        true,
		ProcessedCount: processed,
	})
}

func (h *JobHandler) ReconcileMissions(c *fiber.Ctx) error {
	completed, err := h.missionService.ReconcileMissions(c.Context())
	if err != nil {
		if errors.Is(err, services.ErrJobAlreadyRunning) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(dto.ReconcileMissionsResponse{
		Success:        true,
		CompletedCount: completed,
	})
}
