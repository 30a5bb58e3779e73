package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnbalancedTransactionError reports that a transaction's debit and credit
// totals differ by more than the balancing tolerance.
type UnbalancedTransactionError struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

func (e *UnbalancedTransactionError) Error() string {
	return fmt.Sprintf("transaction does not balance: debits %s != credits %s",
		e.DebitTotal.StringFixed(2), e.CreditTotal.StringFixed(2))
}

// InvalidSplitError reports the first violated rule of a split transaction,
// carrying a human-readable reason suitable for direct display.
type InvalidSplitError struct {
	Reason string
}

func (e *InvalidSplitError) Error() string {
	return "invalid split transaction: " + e.Reason
}

// DataIntegrityError reports that a referenced account or its account type
// could not be resolved. Callers must treat the affected figure as unknown,
// not as zero.
type DataIntegrityError struct {
	AccountID uuid.UUID
	Reason    string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: account %s: %s", e.AccountID, e.Reason)
}

// CyclicHierarchyError reports a parent/child cycle in the chart of accounts.
type CyclicHierarchyError struct {
	AccountID uuid.UUID
}

func (e *CyclicHierarchyError) Error() string {
	return fmt.Sprintf("account hierarchy contains a cycle through %s", e.AccountID)
}
