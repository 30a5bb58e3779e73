package prices

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/audit"
	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/ledger"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req CreatePriceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if _, err := uuid.Parse(req.AccountID); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "account_id must be a UUID")
	}
	if !req.Price.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "price must be greater than zero")
	}
	priceDate, err := time.Parse("2006-01-02", req.PriceDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "price_date must be YYYY-MM-DD")
	}

	id, err := h.Repo.Add(userContext(c), userID, req, priceDate)
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return fiber.NewError(fiber.StatusNotFound, "account not found")
	case errors.Is(err, ErrNotInvestment):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "prices can only be recorded for investment accounts")
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to record price: "+err.Error())
	}

	_ = audit.Write(userContext(c), h.Repo.Pool, audit.Entry{
		UserID:     &userID,
		Action:     "price.create",
		EntityType: "account_price",
		EntityID:   &id,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "message": "price recorded"})
}

func (h *Handler) ListByAccount(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	accountID := c.Params("accountId")
	if _, err := uuid.Parse(accountID); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}

	items, err := h.Repo.ListByAccount(userContext(c), userID, accountID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list prices: "+err.Error())
	}
	return c.JSON(items)
}

// Latest serves the observation the valuation path would use: most recent at
// or before today, same-date ties broken by creation time.
func (h *Handler) Latest(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	accountID := c.Params("accountId")
	if _, err := uuid.Parse(accountID); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}

	points, err := h.Repo.PointsByAccount(userContext(c), userID, accountID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load prices: "+err.Error())
	}

	latest, ok := ledger.LatestPrice(points, time.Now())
	if !ok {
		return c.JSON(fiber.Map{"price": nil})
	}
	return c.JSON(fiber.Map{
		"price": latest.Price,
		"date":  latest.Date.Format("2006-01-02"),
	})
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
