package tags

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

type createTagRequest struct {
	Name string `json:"name"`
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createTagRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name required")
	}

	t, err := h.Repo.Create(userContext(c), userID, req.Name)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create tag: "+err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Repo.List(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list tags: "+err.Error())
	}
	return c.JSON(items)
}

func (h *Handler) Attach(c *fiber.Ctx) error {
	return h.link(c, h.Repo.Attach, "tag attached")
}

func (h *Handler) Detach(c *fiber.Ctx) error {
	return h.link(c, h.Repo.Detach, "tag detached")
}

func (h *Handler) link(c *fiber.Ctx, op func(context.Context, string, string, string) error, message string) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	transactionID := c.Params("transactionId")
	tagID := c.Params("tagId")
	if _, err := uuid.Parse(transactionID); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transaction id")
	}
	if _, err := uuid.Parse(tagID); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid tag id")
	}

	err = op(userContext(c), userID, transactionID, tagID)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "transaction or tag not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed: "+err.Error())
	}
	return c.JSON(fiber.Map{"message": message})
}

func extractUserID(c *fiber.Ctx) (string, error) {
	val := c.Locals("user_id")
	if val == nil {
		val = c.Locals("userID")
	}
	if val == nil {
		return "", errors.New("user id missing")
	}
	if uid, ok := val.(string); ok && strings.TrimSpace(uid) != "" {
		return uid, nil
	}
	return "", errors.New("user id missing")
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
