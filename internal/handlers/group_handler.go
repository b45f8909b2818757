package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/middleware"
	"github.com/fathima-sithara/socialnet/internal/repository"
	"github.com/fathima-sithara/socialnet/internal/service"
)

type GroupHandler struct {
	svc *service.GroupService
	log *zap.Logger
}

func NewGroupHandler(svc *service.GroupService, log *zap.Logger) *GroupHandler {
	return &GroupHandler{svc: svc, log: log}
}

type createGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Avatar      string   `json:"avatar"`
	Members     []string `json:"members"`
}

func (h *GroupHandler) Create(c *fiber.Ctx) error {
	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	g, err := h.svc.Create(c.Context(), middleware.UserID(c), req.Name, req.Description, req.Avatar, req.Members)
	if err != nil {
		if errors.Is(err, service.ErrNameRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error("create group failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create group"})
	}
	return c.Status(fiber.StatusCreated).JSON(g)
}

func (h *GroupHandler) Get(c *fiber.Ctx) error {
	g, err := h.svc.Get(c.Context(), c.Params("groupId"))
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "group not found"})
		}
		h.log.Error("get group failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load group"})
	}
	return c.JSON(g)
}

func (h *GroupHandler) Mine(c *fiber.Ctx) error {
	groups, err := h.svc.ListForUser(c.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("list groups failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load groups"})
	}
	return c.JSON(groups)
}

func (h *GroupHandler) AddMember(c *fiber.Ctx) error {
	err := h.svc.AddMember(c.Context(), middleware.UserID(c), c.Params("groupId"), c.Params("userId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotGroupAdmin):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrGroupNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "group not found"})
		}
		h.log.Error("add group member failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to add member"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *GroupHandler) RemoveMember(c *fiber.Ctx) error {
	err := h.svc.RemoveMember(c.Context(), middleware.UserID(c), c.Params("groupId"), c.Params("userId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotGroupAdmin):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrGroupNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "group not found"})
		}
		h.log.Error("remove group member failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to remove member"})
	}
	return c.JSON(fiber.Map{"success": true})
}
