package transactions

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestToLedgerEntry_CashDefaults(t *testing.T) {
	accID := uuid.New()
	e, err := toLedgerEntry(EntryInput{
		AccountID: accID.String(),
		Side:      "DEBIT",
		Amount:    dec("250.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, accID, e.AccountID)
	assert.Equal(t, ledger.Debit, e.Side)
	assert.True(t, e.Quantity.Equal(dec("1")))
	assert.True(t, e.Price.Equal(dec("250.00")))
	assert.True(t, e.Amount.Equal(dec("250.00")))
}

func TestToLedgerEntry_UnitsDeriveAmount(t *testing.T) {
	e, err := toLedgerEntry(EntryInput{
		AccountID: uuid.NewString(),
		Side:      "BUY",
		Quantity:  decPtr("10"),
		Price:     decPtr("120.50"),
	})
	require.NoError(t, err)

	assert.Equal(t, ledger.Debit, e.Side, "BUY folds into DEBIT")
	assert.True(t, e.Amount.Equal(dec("1205.00")), "amount %s", e.Amount)
}

func TestToLedgerEntry_SellFoldsToCredit(t *testing.T) {
	e, err := toLedgerEntry(EntryInput{
		AccountID: uuid.NewString(),
		Side:      "sell",
		Quantity:  decPtr("5"),
		Price:     decPtr("100"),
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.Credit, e.Side)
}

func TestToLedgerEntry_Rejections(t *testing.T) {
	valid := uuid.NewString()

	_, err := toLedgerEntry(EntryInput{AccountID: "nope", Side: "DEBIT", Amount: dec("1")})
	assert.Error(t, err)

	_, err = toLedgerEntry(EntryInput{AccountID: valid, Side: "TRANSFER", Amount: dec("1")})
	assert.Error(t, err)

	_, err = toLedgerEntry(EntryInput{AccountID: valid, Side: "DEBIT", Amount: dec("0")})
	assert.Error(t, err)

	_, err = toLedgerEntry(EntryInput{AccountID: valid, Side: "DEBIT", Quantity: decPtr("10")})
	assert.Error(t, err, "quantity without price")

	_, err = toLedgerEntry(EntryInput{AccountID: valid, Side: "DEBIT", Quantity: decPtr("-1"), Price: decPtr("5")})
	assert.Error(t, err)
}

func TestDebitTotal(t *testing.T) {
	entries := []ledger.Entry{
		{Side: ledger.Debit, Amount: dec("300")},
		{Side: ledger.Credit, Amount: dec("120")},
		{Side: ledger.Debit, Amount: dec("45.50")},
	}
	assert.True(t, debitTotal(entries).Equal(dec("345.50")))
}
