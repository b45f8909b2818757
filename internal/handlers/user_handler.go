package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/middleware"
	"github.com/fathima-sithara/socialnet/internal/repository"
	"github.com/fathima-sithara/socialnet/internal/service"
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	u, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		h.log.Error("get user failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(u)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.svc.List(c.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(users)
}

func (h *UserHandler) Search(c *fiber.Ctx) error {
	users, err := h.svc.Search(c.Context(), middleware.UserID(c), c.Query("name"))
	if err != nil {
		h.log.Error("search users failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(users)
}

func (h *UserHandler) Suggested(c *fiber.Ctx) error {
	users, err := h.svc.Suggested(c.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("suggested users failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(users)
}

func (h *UserHandler) AddRecentChat(c *fiber.Ctx) error {
	err := h.svc.AddRecentChat(c.Context(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrSelfChat) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		h.log.Error("add recent chat failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"message": "recent chat updated"})
}

func (h *UserHandler) RecentChats(c *fiber.Ctx) error {
	chats, err := h.svc.RecentChats(c.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("recent chats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(chats)
}
