package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/ledger"
)

// AccountType is immutable reference data seeded by migration.
type AccountType struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	NormalBalance string `json:"normal_balance"`
}

// Account is a chart-of-accounts row. A nil UserID marks a shared/system
// account visible to everyone. Balance is the cached column and is
// informational only: reports always recompute from entries.
type Account struct {
	ID            string          `json:"id"`
	UserID        *string         `json:"user_id,omitempty"`
	ParentID      *string         `json:"parent_id,omitempty"`
	AccountTypeID string          `json:"account_type_id"`
	Name          string          `json:"name"`
	Code          *string         `json:"code,omitempty"`
	Description   *string         `json:"description,omitempty"`
	IsPlaceholder bool            `json:"is_placeholder"`
	IsActive      bool            `json:"is_active"`
	Balance       decimal.Decimal `json:"balance"`
	Type          AccountType     `json:"account_type"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToLedger converts a stored row into the value object the computation core
// operates on. Rows are converted once at this boundary and never passed
// around as loose maps.
func (a Account) ToLedger() (ledger.Account, error) {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return ledger.Account{}, err
	}

	var parent *uuid.UUID
	if a.ParentID != nil {
		p, err := uuid.Parse(*a.ParentID)
		if err != nil {
			return ledger.Account{}, err
		}
		parent = &p
	}

	typeID, err := uuid.Parse(a.Type.ID)
	if err != nil {
		return ledger.Account{}, err
	}

	code := ""
	if a.Code != nil {
		code = *a.Code
	}

	return ledger.Account{
		ID:       id,
		ParentID: parent,
		Name:     a.Name,
		Code:     code,
		Type: ledger.AccountType{
			ID:            typeID,
			Name:          a.Type.Name,
			Category:      ledger.Category(a.Type.Category),
			NormalBalance: ledger.Side(a.Type.NormalBalance),
		},
		IsPlaceholder: a.IsPlaceholder,
		IsActive:      a.IsActive,
	}, nil
}

type CreateAccountRequest struct {
	Name          string  `json:"name"`
	AccountTypeID string  `json:"account_type_id"`
	ParentID      *string `json:"parent_id"`
	Code          *string `json:"code"`
	Description   *string `json:"description"`
	IsPlaceholder bool    `json:"is_placeholder"`
}

type UpdateAccountRequest struct {
	Name          *string `json:"name"`
	ParentID      *string `json:"parent_id"`
	Code          *string `json:"code"`
	Description   *string `json:"description"`
	IsPlaceholder *bool   `json:"is_placeholder"`
}
