package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/middleware"
	"github.com/fathima-sithara/socialnet/internal/repository"
	"github.com/fathima-sithara/socialnet/internal/service"
)

type PostHandler struct {
	svc *service.PostService
	log *zap.Logger
}

func NewPostHandler(svc *service.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{svc: svc, log: log}
}

type createPostReq struct {
	Text      string `json:"text"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
}

type commentReq struct {
	Text string `json:"text"`
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req createPostReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	p, err := h.svc.Create(c.Context(), middleware.UserID(c), req.Text, req.MediaURL, req.MediaType)
	if err != nil {
		if errors.Is(err, service.ErrTextRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text required"})
		}
		h.log.Error("create post failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create post"})
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *PostHandler) ListAll(c *fiber.Ctx) error {
	posts, err := h.svc.ListAll(c.Context())
	if err != nil {
		h.log.Error("list posts failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch posts"})
	}
	return c.JSON(posts)
}

func (h *PostHandler) ListByUser(c *fiber.Ctx) error {
	posts, err := h.svc.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		h.log.Error("list user posts failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch posts"})
	}
	return c.JSON(posts)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	err := h.svc.Delete(c.Context(), middleware.UserID(c), c.Params("postId"))
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "post deleted"})
	case errors.Is(err, repository.ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
	case errors.Is(err, service.ErrNotPostOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not allowed"})
	default:
		h.log.Error("delete post failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete post"})
	}
}

func (h *PostHandler) Like(c *fiber.Ctx) error {
	liked, likes, err := h.svc.ToggleLike(c.Context(), middleware.UserID(c), c.Params("postId"))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		h.log.Error("like post failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"success": true, "liked": liked, "likes": likes})
}

func (h *PostHandler) Comment(c *fiber.Ctx) error {
	var req commentReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	p, err := h.svc.Comment(c.Context(), middleware.UserID(c), c.Params("postId"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTextRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text required"})
		case errors.Is(err, repository.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		h.log.Error("comment failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"comments":     p.Comments,
		"commentCount": len(p.Comments),
	})
}

func (h *PostHandler) Reply(c *fiber.Ctx) error {
	var req commentReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	p, err := h.svc.Reply(c.Context(), middleware.UserID(c), c.Params("postId"), c.Params("commentId"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTextRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text required"})
		case errors.Is(err, repository.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		case errors.Is(err, repository.ErrCommentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "comment not found"})
		}
		h.log.Error("reply failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comments": p.Comments})
}

func (h *PostHandler) Comments(c *fiber.Ctx) error {
	p, err := h.svc.Get(c.Context(), c.Params("postId"))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		h.log.Error("get comments failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{
		"comments":     p.Comments,
		"commentCount": len(p.Comments),
	})
}

func (h *PostHandler) Counts(c *fiber.Ctx) error {
	likes, comments, err := h.svc.Counts(c.Context(), c.Params("postId"))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		h.log.Error("post counts failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"likesCount": likes, "commentsCount": comments})
}
