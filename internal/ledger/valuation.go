package ledger

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Valuation is the mark-to-market result for one investment account.
type Valuation struct {
	MarketValue              decimal.Decimal
	UnrealizedGain           decimal.Decimal
	UnrealizedGainPercentage decimal.Decimal
	HasPrice                 bool
}

// ValueInvestment combines an investment account's signed cash balance, its
// unit holding and the latest known price into market value and unrealized
// gain figures. It is a pure function: the same snapshot always yields the
// same result.
//
// With a known price, market value is units x price (zero when the holding
// is not positive). Without one, market value falls back to the invested
// balance so an unpriced security still shows its cost basis instead of
// vanishing from totals.
//
// The invested total used for the gain is clamped at zero: the signed balance
// may go negative after full divestment, but the investor-facing percentage
// is computed against money actually in the position.
func ValueInvestment(balance, units decimal.Decimal, latest *PricePoint) Valuation {
	v := Valuation{HasPrice: latest != nil}

	if latest != nil {
		if units.IsPositive() {
			v.MarketValue = units.Mul(latest.Price)
		} else {
			v.MarketValue = decimal.Zero
		}
	} else {
		v.MarketValue = balance
	}

	invested := balance
	if invested.IsNegative() {
		invested = decimal.Zero
	}

	v.UnrealizedGain = v.MarketValue.Sub(invested)
	if invested.IsPositive() {
		v.UnrealizedGainPercentage = v.UnrealizedGain.Div(invested).Mul(hundred)
	} else {
		v.UnrealizedGainPercentage = decimal.Zero
	}
	return v
}
