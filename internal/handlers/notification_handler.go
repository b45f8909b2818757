package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/middleware"
	"github.com/fathima-sithara/socialnet/internal/service"
)

type NotificationHandler struct {
	svc *service.NotificationService
	log *zap.Logger
}

func NewNotificationHandler(svc *service.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: log}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	views, err := h.svc.List(c.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("list notifications failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load notifications"})
	}
	return c.JSON(views)
}

func (h *NotificationHandler) UnseenCount(c *fiber.Ctx) error {
	count, err := h.svc.UnseenCount(c.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("unseen count failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to count notifications"})
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkSeen(c *fiber.Ctx) error {
	if err := h.svc.MarkSeen(c.Context(), c.Params("id")); err != nil {
		h.log.Error("mark notification seen failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update notification"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *NotificationHandler) CleanupSeen(c *fiber.Ctx) error {
	if err := h.svc.CleanupSeen(c.Context(), middleware.UserID(c)); err != nil {
		h.log.Error("cleanup notifications failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete notifications"})
	}
	return c.JSON(fiber.Map{"success": true})
}
