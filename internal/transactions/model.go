package transactions

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the posted financial event. TotalAmount is derived at post
// time as the debit-side sum; entries are immutable once posted and only the
// metadata fields can be edited afterwards.
type Transaction struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	ReferenceNumber *string         `json:"reference_number,omitempty"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transaction_date"` // YYYY-MM-DD
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Notes           *string         `json:"notes,omitempty"`
	IsSplit         bool            `json:"is_split"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EntryView is one posted line as returned to the dashboard.
type EntryView struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	AccountName string          `json:"account_name"`
	Side        string          `json:"entry_side"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
	LineNumber  int             `json:"line_number"`
	Description *string         `json:"description,omitempty"`
}

// EntryInput is one proposed posting line. Side accepts DEBIT/CREDIT and the
// investment aliases BUY/SELL. Quantity and Price are optional for cash
// postings (quantity defaults to 1, price to the amount).
type EntryInput struct {
	AccountID   string           `json:"account_id"`
	Side        string           `json:"entry_side"`
	Amount      decimal.Decimal  `json:"amount"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

type CreateTransactionRequest struct {
	Description     string       `json:"description"`
	TransactionDate string       `json:"transaction_date"` // YYYY-MM-DD
	ReferenceNumber *string      `json:"reference_number"`
	Notes           *string      `json:"notes"`
	Entries         []EntryInput `json:"entries"`
}

type CreateSplitRequest struct {
	Description     string       `json:"description"`
	TransactionDate string       `json:"transaction_date"` // YYYY-MM-DD
	ReferenceNumber *string      `json:"reference_number"`
	Notes           *string      `json:"notes"`
	Primary         EntryInput   `json:"primary"`
	Splits          []EntryInput `json:"splits"`
}

type UpdateTransactionRequest struct {
	Description     *string `json:"description"`
	ReferenceNumber *string `json:"reference_number"`
	Notes           *string `json:"notes"`
}
