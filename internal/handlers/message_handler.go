package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/middleware"
	"github.com/fathima-sithara/socialnet/internal/service"
)

type MessageHandler struct {
	svc *service.MessageService
	log *zap.Logger
}

func NewMessageHandler(svc *service.MessageService, log *zap.Logger) *MessageHandler {
	return &MessageHandler{svc: svc, log: log}
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var in service.SendInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	m, err := h.svc.Send(c.Context(), middleware.UserID(c), in)
	if err != nil {
		if errors.Is(err, service.ErrContentRequired) || errors.Is(err, service.ErrTargetRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error("send message failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to send message"})
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// History returns the direct conversation between the authenticated
// user and the other participant, oldest first.
func (h *MessageHandler) History(c *fiber.Ctx) error {
	msgs, err := h.svc.History(c.Context(), c.Params("user1"), c.Params("user2"))
	if err != nil {
		h.log.Error("message history failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load messages"})
	}
	return c.JSON(msgs)
}

func (h *MessageHandler) GroupHistory(c *fiber.Ctx) error {
	msgs, err := h.svc.GroupHistory(c.Context(), c.Params("groupId"))
	if err != nil {
		h.log.Error("group history failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load messages"})
	}
	return c.JSON(msgs)
}
