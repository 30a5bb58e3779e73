package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/audit"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) ListTypes(c *fiber.Ctx) error {
	types, err := h.Repo.ListTypes(userContext(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list account types: "+err.Error())
	}
	return c.JSON(types)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name required")
	}
	if _, err := uuid.Parse(req.AccountTypeID); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "account_type_id must be a UUID")
	}
	if req.ParentID != nil {
		if _, err := uuid.Parse(*req.ParentID); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "parent_id must be a UUID")
		}
	}

	id, err := h.Repo.Create(userContext(c), userID, req)
	switch {
	case errors.Is(err, ErrTypeNotFound):
		return fiber.NewError(fiber.StatusBadRequest, "unknown account type")
	case errors.Is(err, ErrParentNotFound):
		return fiber.NewError(fiber.StatusBadRequest, "unknown parent account")
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create account: "+err.Error())
	}

	_ = audit.Write(userContext(c), h.Repo.Pool, audit.Entry{
		UserID:     &userID,
		Action:     "account.create",
		EntityType: "account",
		EntityID:   &id,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	includeInactive := strings.EqualFold(c.Query("include_inactive"), "true")

	items, err := h.Repo.ListByUser(userContext(c), userID, includeInactive)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list accounts: "+err.Error())
	}
	return c.JSON(items)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}

	acc, err := h.Repo.Get(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "account not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load account: "+err.Error())
	}
	return c.JSON(acc)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}

	var req UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
	}
	if req.ParentID != nil {
		if _, err := uuid.Parse(*req.ParentID); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "parent_id must be a UUID")
		}
	}

	err = h.Repo.Update(userContext(c), userID, id, req)
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "account not found")
	case errors.Is(err, ErrHasEntries):
		return fiber.NewError(fiber.StatusConflict, "account with posted entries cannot become a placeholder")
	case errors.Is(err, ErrCyclicParent):
		return fiber.NewError(fiber.StatusConflict, "parent assignment would create a cycle")
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update account: "+err.Error())
	}

	_ = audit.Write(userContext(c), h.Repo.Pool, audit.Entry{
		UserID:     &userID,
		Action:     "account.update",
		EntityType: "account",
		EntityID:   &id,
	})

	return c.JSON(fiber.Map{"id": id, "message": "account updated"})
}

func (h *Handler) Deactivate(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}

	err = h.Repo.Deactivate(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "account not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to deactivate account: "+err.Error())
	}

	_ = audit.Write(userContext(c), h.Repo.Pool, audit.Entry{
		UserID:     &userID,
		Action:     "account.deactivate",
		EntityType: "account",
		EntityID:   &id,
	})

	return c.JSON(fiber.Map{"id": id, "message": "account deactivated"})
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
