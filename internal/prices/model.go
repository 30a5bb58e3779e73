package prices

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountPrice is one mark-to-market observation for an investment account.
type AccountPrice struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Price     decimal.Decimal `json:"price"`
	PriceDate string          `json:"price_date"` // YYYY-MM-DD
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type CreatePriceRequest struct {
	AccountID string          `json:"account_id"`
	Price     decimal.Decimal `json:"price"`
	PriceDate string          `json:"price_date"` // YYYY-MM-DD
	Notes     *string         `json:"notes"`
}
