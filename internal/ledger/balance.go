package ledger

import "github.com/shopspring/decimal"

// Balance reduces an account's entries into a signed balance using the
// account's normal-balance polarity: entries on the normal side add, entries
// on the opposite side subtract. Entry order never affects the result.
//
// Placeholder accounts always report zero, even if stray entries are passed
// in; they must never carry postings, so a nonzero value is not propagated.
// An account whose type carries no normal balance cannot be reduced and
// yields a DataIntegrityError: the balance is unknown, not zero.
func Balance(acc Account, entries []Entry) (decimal.Decimal, error) {
	return reduce(acc, entries, func(e Entry) decimal.Decimal { return e.Amount })
}

// Units is the same reduction over entry quantities instead of amounts. It is
// only meaningful for investment accounts (cash postings carry quantity 1 by
// convention), and is used to mark holdings to market.
func Units(acc Account, entries []Entry) (decimal.Decimal, error) {
	return reduce(acc, entries, func(e Entry) decimal.Decimal { return e.Quantity })
}

func reduce(acc Account, entries []Entry, field func(Entry) decimal.Decimal) (decimal.Decimal, error) {
	if acc.Type.NormalBalance != Debit && acc.Type.NormalBalance != Credit {
		return decimal.Zero, &DataIntegrityError{
			AccountID: acc.ID,
			Reason:    "account type has no normal balance",
		}
	}
	if acc.IsPlaceholder {
		return decimal.Zero, nil
	}

	total := decimal.Zero
	for _, e := range entries {
		if e.Side == acc.Type.NormalBalance {
			total = total.Add(field(e))
		} else {
			total = total.Sub(field(e))
		}
	}
	return total, nil
}
