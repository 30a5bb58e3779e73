package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidateTransaction checks the single balancing invariant every posted
// transaction must satisfy: total debits equal total credits within the
// balancing tolerance (a difference of exactly 0.01 passes). A failing
// transaction must not be persisted.
func ValidateTransaction(entries []Entry) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, e := range entries {
		switch e.Side {
		case Debit:
			debits = debits.Add(e.Amount)
		case Credit:
			credits = credits.Add(e.Amount)
		}
	}
	if debits.Sub(credits).Abs().GreaterThan(Tolerance) {
		return &UnbalancedTransactionError{DebitTotal: debits, CreditTotal: credits}
	}
	return nil
}

// ValidateSplit checks a split transaction: one primary leg offset by
// multiple opposite-side legs. Rules run in order and the first failure
// wins, so the reported reason is stable for a given input.
func ValidateSplit(primary Entry, splits []Entry) error {
	if len(splits) == 0 {
		return &InvalidSplitError{Reason: "must have at least one split entry"}
	}

	want := primary.Side.Opposite()
	for _, s := range splits {
		if s.Side != want {
			return &InvalidSplitError{Reason: fmt.Sprintf(
				"all split entries must be %s when primary is %s",
				strings.ToLower(string(want)), strings.ToLower(string(primary.Side)))}
		}
	}

	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Amount)
	}
	if primary.Amount.Sub(sum).Abs().GreaterThan(Tolerance) {
		return &InvalidSplitError{Reason: "primary entry amount must equal sum of split entries"}
	}

	if !primary.Amount.IsPositive() {
		return &InvalidSplitError{Reason: "all amounts must be greater than zero"}
	}
	for _, s := range splits {
		if !s.Amount.IsPositive() {
			return &InvalidSplitError{Reason: "all amounts must be greater than zero"}
		}
	}

	seen := map[uuid.UUID]bool{primary.AccountID: true}
	for _, s := range splits {
		if seen[s.AccountID] {
			return &InvalidSplitError{Reason: "cannot use the same account multiple times in a split transaction"}
		}
		seen[s.AccountID] = true
	}

	return nil
}

// SplitToEntries flattens a validated split into posting order: line_number 1
// is the primary leg, 2..n are the splits in their given order. The ordering
// is significant downstream (From/To labeling) and must be preserved.
func SplitToEntries(primary Entry, splits []Entry) []Entry {
	out := make([]Entry, 0, len(splits)+1)
	primary.LineNumber = 1
	out = append(out, primary)
	for i, s := range splits {
		s.LineNumber = i + 2
		out = append(out, s)
	}
	return out
}
