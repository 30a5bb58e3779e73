package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legOn(account uuid.UUID, side Side, amount string) Entry {
	return Entry{
		AccountID: account,
		Side:      side,
		Quantity:  decimal.NewFromInt(1),
		Amount:    decimal.RequireFromString(amount),
	}
}

func TestValidateTransaction_Balanced(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	err := ValidateTransaction([]Entry{
		legOn(a, Debit, "100.00"),
		legOn(b, Credit, "100.00"),
	})
	assert.NoError(t, err)
}

func TestValidateTransaction_Unbalanced(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	err := ValidateTransaction([]Entry{
		legOn(a, Debit, "100.00"),
		legOn(b, Credit, "90.00"),
	})

	var unbalanced *UnbalancedTransactionError
	require.ErrorAs(t, err, &unbalanced)
	assert.True(t, unbalanced.DebitTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, unbalanced.CreditTotal.Equal(decimal.NewFromInt(90)))
}

func TestValidateTransaction_ToleranceBoundary(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	// off by exactly 0.01 passes
	err := ValidateTransaction([]Entry{
		legOn(a, Debit, "100.01"),
		legOn(b, Credit, "100.00"),
	})
	assert.NoError(t, err)

	// off by 0.011 fails
	err = ValidateTransaction([]Entry{
		legOn(a, Debit, "100.011"),
		legOn(b, Credit, "100.00"),
	})
	assert.Error(t, err)
}

func TestValidateTransaction_MultiLeg(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	err := ValidateTransaction([]Entry{
		legOn(a, Debit, "300.00"),
		legOn(b, Credit, "120.00"),
		legOn(c, Credit, "180.00"),
	})
	assert.NoError(t, err)
}

func TestValidateSplit_Accepts(t *testing.T) {
	primary := legOn(uuid.New(), Debit, "500")
	splits := []Entry{
		legOn(uuid.New(), Credit, "300"),
		legOn(uuid.New(), Credit, "200"),
	}
	assert.NoError(t, ValidateSplit(primary, splits))
}

func TestValidateSplit_RulesInOrder(t *testing.T) {
	primary := legOn(uuid.New(), Debit, "500")

	t.Run("no splits", func(t *testing.T) {
		err := ValidateSplit(primary, nil)
		var split *InvalidSplitError
		require.ErrorAs(t, err, &split)
		assert.Equal(t, "must have at least one split entry", split.Reason)
	})

	t.Run("side mismatch", func(t *testing.T) {
		err := ValidateSplit(primary, []Entry{
			legOn(uuid.New(), Credit, "300"),
			legOn(uuid.New(), Debit, "200"),
		})
		var split *InvalidSplitError
		require.ErrorAs(t, err, &split)
		assert.Equal(t, "all split entries must be credit when primary is debit", split.Reason)
	})

	t.Run("sum mismatch", func(t *testing.T) {
		err := ValidateSplit(primary, []Entry{
			legOn(uuid.New(), Credit, "300"),
			legOn(uuid.New(), Credit, "150"),
		})
		var split *InvalidSplitError
		require.ErrorAs(t, err, &split)
		assert.Equal(t, "primary entry amount must equal sum of split entries", split.Reason)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		zero := legOn(uuid.New(), Debit, "0")
		err := ValidateSplit(zero, []Entry{legOn(uuid.New(), Credit, "0")})
		var split *InvalidSplitError
		require.ErrorAs(t, err, &split)
		assert.Equal(t, "all amounts must be greater than zero", split.Reason)
	})

	t.Run("duplicate account", func(t *testing.T) {
		shared := uuid.New()
		err := ValidateSplit(legOn(shared, Debit, "500"), []Entry{
			legOn(shared, Credit, "300"),
			legOn(uuid.New(), Credit, "200"),
		})
		var split *InvalidSplitError
		require.ErrorAs(t, err, &split)
		assert.Equal(t, "cannot use the same account multiple times in a split transaction", split.Reason)
	})
}

func TestValidateSplit_SumTolerance(t *testing.T) {
	primary := legOn(uuid.New(), Credit, "100.01")
	splits := []Entry{
		legOn(uuid.New(), Debit, "50.00"),
		legOn(uuid.New(), Debit, "50.00"),
	}
	assert.NoError(t, ValidateSplit(primary, splits))
}

func TestSplitToEntries_PreservesOrder(t *testing.T) {
	primary := legOn(uuid.New(), Debit, "500")
	first := legOn(uuid.New(), Credit, "300")
	second := legOn(uuid.New(), Credit, "200")

	flat := SplitToEntries(primary, []Entry{first, second})

	require.Len(t, flat, 3)
	assert.Equal(t, 1, flat[0].LineNumber)
	assert.Equal(t, primary.AccountID, flat[0].AccountID)
	assert.Equal(t, 2, flat[1].LineNumber)
	assert.Equal(t, first.AccountID, flat[1].AccountID)
	assert.Equal(t, 3, flat[2].LineNumber)
	assert.Equal(t, second.AccountID, flat[2].AccountID)
}

func TestSplitRoundTrip(t *testing.T) {
	// a split accepted by ValidateSplit must flatten into entries that
	// pass the plain transaction check
	primary := legOn(uuid.New(), Debit, "750.25")
	splits := []Entry{
		legOn(uuid.New(), Credit, "500.25"),
		legOn(uuid.New(), Credit, "150.00"),
		legOn(uuid.New(), Credit, "100.00"),
	}

	require.NoError(t, ValidateSplit(primary, splits))
	assert.NoError(t, ValidateTransaction(SplitToEntries(primary, splits)))
}
