package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/haulink/trucker-backend/internal/dto"
	"github.com/haulink/trucker-backend/internal/middleware"
	"github.com/haulink/trucker-backend/internal/services"
)

// UserHandler serves the authenticated user's own points, notifications and
// mission board.
type UserHandler struct {
	pointsService       *services.PointsService
	notificationService *services.NotificationService
	missionService      *services.MissionService
}

func NewUserHandler(
	pointsService *services.PointsService,
	notificationService *services.NotificationService,
	missionService *services.MissionService,
) *UserHandler {
	return &UserHandler{
		pointsService:       pointsService,
		notificationService: notificationService,
		missionService:      missionService,
	}
}

func (h *UserHandler) MyPoints(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 200 {
		limit = 200
	}

	history, err := h.pointsService.History(c.Context(), userID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch point history",
		})
	}

	total, err := h.pointsService.Balance(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute balance",
		})
	}

	return c.JSON(dto.PointsResponse{
		Success:     true,
		History:     history,
		TotalPoints: total,
	})
}

func (h *UserHandler) MyNotifications(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 100 {
		limit = 100
	}

	notifs, total, err := h.notificationService.List(c.Context(), userID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch notifications",
		})
	}

	unread, _ := h.notificationService.UnreadCount(c.Context(), userID)

	return c.JSON(fiber.Map{
		"notifications": notifs,
		"total":         total,
		"unread":        unread,
		"limit":         limit,
		"offset":        offset,
	})
}

func (h *UserHandler) MarkNotificationRead(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid notification ID",
		})
	}

	if err := h.notificationService.MarkRead(c.Context(), userID, notifID); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to mark notification read",
		})
	}

	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *UserHandler) MyMissions(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.missionService.AssignActiveMissions(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to assign missions",
		})
	}

	ums, err := h.missionService.ListUserMissions(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch missions",
		})
	}

	out := make([]dto.MissionProgressResponse, 0, len(ums))
	for _, um := range ums {
		out = append(out, dto.MissionProgressResponse{
			Mission:     um.Mission,
			Progress:    um.Progress,
			MaxProgress: um.MaxProgress,
			IsCompleted: um.IsCompleted,
		})
	}
	return c.JSON(fiber.Map{"missions": out})
}
