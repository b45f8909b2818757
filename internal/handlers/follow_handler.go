package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/middleware"
	"github.com/fathima-sithara/socialnet/internal/repository"
	"github.com/fathima-sithara/socialnet/internal/service"
)

type FollowHandler struct {
	svc *service.FollowService
	log *zap.Logger
}

func NewFollowHandler(svc *service.FollowService, log *zap.Logger) *FollowHandler {
	return &FollowHandler{svc: svc, log: log}
}

func (h *FollowHandler) Follow(c *fiber.Ctx) error {
	err := h.svc.Follow(c.Context(), middleware.UserID(c), c.Params("id"))
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "following"})
	case errors.Is(err, service.ErrSelfFollow), errors.Is(err, service.ErrAlreadyFollowing):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	default:
		h.log.Error("follow failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

func (h *FollowHandler) Unfollow(c *fiber.Ctx) error {
	err := h.svc.Unfollow(c.Context(), middleware.UserID(c), c.Params("id"))
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "unfollowed"})
	case errors.Is(err, service.ErrNotFollowing):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	default:
		h.log.Error("unfollow failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

func (h *FollowHandler) Status(c *fiber.Ctx) error {
	following, followedBy, err := h.svc.Status(c.Context(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		h.log.Error("follow status failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"isFollowing": following, "isFollowedBy": followedBy})
}

func (h *FollowHandler) Followers(c *fiber.Ctx) error {
	users, err := h.svc.Followers(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		h.log.Error("followers failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(users)
}

func (h *FollowHandler) Following(c *fiber.Ctx) error {
	users, err := h.svc.Following(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		h.log.Error("following failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(users)
}
