package reports

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/ledger"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// asOf resolves the optional as_of query (YYYY-MM-DD), defaulting to now.
func asOf(c *fiber.Ctx) (time.Time, error) {
	raw := strings.TrimSpace(c.Query("as_of"))
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.New("as_of must be YYYY-MM-DD")
	}
	// valuation at end of the requested day
	return t.Add(24*time.Hour - time.Nanosecond), nil
}

func (h *Handler) BalanceSheet(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	at, err := asOf(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	bs, unavailable, err := h.Service.BalanceSheet(userContext(c), userID, at)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build balance sheet: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"balance_sheet": bs,
		"unavailable":   unavailable,
		"currency":      "INR",
	})
}

func (h *Handler) Investments(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	at, err := asOf(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	snap, err := h.Service.Snapshot(userContext(c), userID, at)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to value investments: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"investments": snap.Investments,
		"unavailable": snap.Unavailable,
		"currency":    "INR",
	})
}

func (h *Handler) AccountTree(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	at, err := asOf(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	tree, unavailable, err := h.Service.AccountTree(userContext(c), userID, at)
	if err != nil {
		var cyclic *ledger.CyclicHierarchyError
		if errors.As(err, &cyclic) {
			return fiber.NewError(fiber.StatusConflict, cyclic.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build account tree: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"tree":        tree,
		"unavailable": unavailable,
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
