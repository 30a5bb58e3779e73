// Package ledger holds the double-entry bookkeeping arithmetic: balance and
// unit reductions, mark-to-market valuation, transaction validation, the
// balance sheet aggregation and the account hierarchy builder. Everything in
// this package is a pure function over already-fetched rows; persistence and
// HTTP live elsewhere.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side is the posting side of a ledger entry.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// Opposite returns the counter side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// ParseSide normalizes a raw entry side. Investment call sites use BUY/SELL,
// which are aliases of DEBIT/CREDIT respectively and are folded here at the
// ingestion boundary rather than treated as a third polarity.
func ParseSide(raw string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBIT", "BUY":
		return Debit, nil
	case "CREDIT", "SELL":
		return Credit, nil
	default:
		return "", fmt.Errorf("invalid entry side %q", raw)
	}
}

// Category classifies an account type.
type Category string

const (
	CategoryAsset     Category = "ASSET"
	CategoryLiability Category = "LIABILITY"
	CategoryEquity    Category = "EQUITY"
	CategoryIncome    Category = "INCOME"
	CategoryExpense   Category = "EXPENSE"
	CategorySystem    Category = "SYSTEM"
)

// AccountType is immutable reference data: its category and normal balance
// never change after creation.
type AccountType struct {
	ID            uuid.UUID
	Name          string
	Category      Category
	NormalBalance Side
}

// Account is a node in the chart of accounts. The cached balance column in
// the database is informational only and deliberately absent here; callers
// always recompute from entries.
type Account struct {
	ID            uuid.UUID
	ParentID      *uuid.UUID
	Name          string
	Code          string
	Type          AccountType
	IsPlaceholder bool
	IsActive      bool
}

// Entry is one posted debit/credit line. Quantity is 1 for cash postings;
// investment postings carry real units and a per-unit price, with
// Amount = Quantity x Price.
type Entry struct {
	AccountID   uuid.UUID
	Side        Side
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Amount      decimal.Decimal
	LineNumber  int
	Description string
}

// PricePoint is a mark-to-market observation for an investment account.
type PricePoint struct {
	Price     decimal.Decimal
	Date      time.Time
	CreatedAt time.Time
}

// Tolerance is the floating-point slack allowed when checking that debits
// equal credits. A difference of exactly Tolerance is still accepted.
var Tolerance = decimal.New(1, -2) // 0.01

// IsInvestment reports whether the account holds unit-denominated securities,
// decided by a case-insensitive match on the account-type name. This mirrors
// how the dashboard classifies accounts and is intentionally heuristic.
func (a Account) IsInvestment() bool {
	name := strings.ToLower(a.Type.Name)
	return strings.Contains(name, "stock") || strings.Contains(name, "mutual fund")
}
