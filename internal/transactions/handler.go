package transactions

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/audit"
	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/ledger"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

// toLedgerEntry normalizes one input line. BUY/SELL fold into DEBIT/CREDIT
// here, at the ingestion boundary. Cash postings default to quantity 1 with
// the price equal to the amount; unit postings derive the amount from
// quantity x price.
func toLedgerEntry(in EntryInput) (ledger.Entry, error) {
	accID, err := uuid.Parse(in.AccountID)
	if err != nil {
		return ledger.Entry{}, errors.New("account_id must be a UUID")
	}

	side, err := ledger.ParseSide(in.Side)
	if err != nil {
		return ledger.Entry{}, err
	}

	e := ledger.Entry{AccountID: accID, Side: side}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}

	if in.Quantity != nil && in.Price != nil {
		if !in.Quantity.IsPositive() || in.Price.IsNegative() {
			return ledger.Entry{}, errors.New("quantity must be positive and price non-negative")
		}
		e.Quantity = *in.Quantity
		e.Price = *in.Price
		e.Amount = in.Quantity.Mul(*in.Price)
		return e, nil
	}
	if in.Quantity != nil || in.Price != nil {
		return ledger.Entry{}, errors.New("quantity and price must be given together")
	}

	if !in.Amount.IsPositive() {
		return ledger.Entry{}, errors.New("amount must be greater than zero")
	}
	e.Quantity = decimal.NewFromInt(1)
	e.Price = in.Amount
	e.Amount = in.Amount
	return e, nil
}

func debitTotal(entries []ledger.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Side == ledger.Debit {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return fiber.NewError(fiber.StatusBadRequest, "description required")
	}
	txDate, err := time.Parse("2006-01-02", req.TransactionDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "transaction_date must be YYYY-MM-DD")
	}
	if len(req.Entries) < 2 {
		return fiber.NewError(fiber.StatusBadRequest, "a transaction needs at least two entries")
	}

	entries := make([]ledger.Entry, 0, len(req.Entries))
	for i, in := range req.Entries {
		e, err := toLedgerEntry(in)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "entry "+strconv.Itoa(i+1)+": "+err.Error())
		}
		e.LineNumber = i + 1
		entries = append(entries, e)
	}

	if err := ledger.ValidateTransaction(entries); err != nil {
		var unbalanced *ledger.UnbalancedTransactionError
		if errors.As(err, &unbalanced) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, unbalanced.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return h.post(c, userID, NewTransaction{
		Description:     req.Description,
		Date:            txDate,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		TotalAmount:     debitTotal(entries),
	}, entries)
}

func (h *Handler) CreateSplit(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req CreateSplitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return fiber.NewError(fiber.StatusBadRequest, "description required")
	}
	txDate, err := time.Parse("2006-01-02", req.TransactionDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "transaction_date must be YYYY-MM-DD")
	}

	primary, err := toLedgerEntry(req.Primary)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "primary entry: "+err.Error())
	}
	splits := make([]ledger.Entry, 0, len(req.Splits))
	for i, in := range req.Splits {
		e, err := toLedgerEntry(in)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "split "+strconv.Itoa(i+1)+": "+err.Error())
		}
		splits = append(splits, e)
	}

	if err := ledger.ValidateSplit(primary, splits); err != nil {
		var invalid *ledger.InvalidSplitError
		if errors.As(err, &invalid) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, invalid.Reason)
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	entries := ledger.SplitToEntries(primary, splits)
	return h.post(c, userID, NewTransaction{
		Description:     req.Description,
		Date:            txDate,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		IsSplit:         true,
		TotalAmount:     debitTotal(entries),
	}, entries)
}

func (h *Handler) post(c *fiber.Ctx, userID string, t NewTransaction, entries []ledger.Entry) error {
	id, err := h.Repo.CreateWithEntries(userContext(c), userID, t, entries)
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return fiber.NewError(fiber.StatusBadRequest, "entry references an unknown or inactive account")
	case errors.Is(err, ErrPlaceholderAccount):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "placeholder accounts cannot carry entries")
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to post transaction: "+err.Error())
	}

	_ = audit.Write(userContext(c), h.Repo.Pool, audit.Entry{
		UserID:     &userID,
		Action:     "transaction.post",
		EntityType: "transaction",
		EntityID:   &id,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "message": "transaction posted"})
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	tag := strings.TrimSpace(c.Query("tag"))

	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from/to must be YYYY-MM-DD")
		}
	}

	items, err := h.Repo.List(userContext(c), userID, limit, from, to, tag)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list transactions: "+err.Error())
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transaction id")
	}

	t, entries, err := h.Repo.Get(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transaction: "+err.Error())
	}
	return c.JSON(fiber.Map{"transaction": t, "entries": entries})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transaction id")
	}

	var req UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	err := h.Repo.UpdateMetadata(userContext(c), userID, id, req)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update transaction: "+err.Error())
	}

	_ = audit.Write(userContext(c), h.Repo.Pool, audit.Entry{
		UserID:     &userID,
		Action:     "transaction.update",
		EntityType: "transaction",
		EntityID:   &id,
	})

	return c.JSON(fiber.Map{"id": id, "message": "transaction updated"})
}

func getUserID(c *fiber.Ctx) (string, bool) {
	if v := c.Locals("user_id"); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	if v := c.Locals("userID"); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
