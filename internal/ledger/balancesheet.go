package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceSheetLine is one account's contribution to a category section.
type BalanceSheetLine struct {
	AccountID    uuid.UUID       `json:"account_id"`
	Name         string          `json:"name"`
	Balance      decimal.Decimal `json:"balance"`
	MarketValue  decimal.Decimal `json:"market_value"`
	IsInvestment bool            `json:"is_investment"`
	IsCurrent    bool            `json:"is_current"`
}

// CategorySection lists the accounts contributing to one category and their
// total. Zero-balance accounts are omitted from the list (their contribution
// to the total is a no-op anyway).
type CategorySection struct {
	Accounts []BalanceSheetLine `json:"accounts"`
	Total    decimal.Decimal    `json:"total"`
}

// BalanceSheet is the aggregated report. IsBalanced encodes the accounting
// identity Assets = Liabilities + Equity + Unrealized Gains + Net Income,
// with equity extended to cover current-period earnings and
// retained-earnings-style unrealized gains.
type BalanceSheet struct {
	Assets      CategorySection `json:"assets"`
	Liabilities CategorySection `json:"liabilities"`
	Equity      CategorySection `json:"equity"`
	Income      CategorySection `json:"income"`
	Expenses    CategorySection `json:"expenses"`

	CurrentAssets         decimal.Decimal `json:"current_assets"`
	NonCurrentAssets      decimal.Decimal `json:"non_current_assets"`
	CurrentLiabilities    decimal.Decimal `json:"current_liabilities"`
	NonCurrentLiabilities decimal.Decimal `json:"non_current_liabilities"`

	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetIncome        decimal.Decimal `json:"net_income"`
	UnrealizedGains  decimal.Decimal `json:"unrealized_gains"`
	NetWorth         decimal.Decimal `json:"net_worth"`
	IsBalanced       bool            `json:"is_balanced"`
}

// currentAssetHints and currentLiabilityHints drive the current vs
// non-current display split. This is a name heuristic carried over from the
// dashboard, approximate on purpose and never authoritative.
var currentAssetHints = []string{"bank", "cash", "checking", "savings"}
var currentLiabilityHints = []string{"credit card", "payable", "overdraft"}

func nameMatchesAny(name string, hints []string) bool {
	lower := strings.ToLower(name)
	for _, h := range hints {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

// BuildBalanceSheet buckets accounts by category and sums them using the
// precomputed balances and, for investment accounts, market values. The
// marketValues map is keyed by account id and consulted only for investment
// assets; an investment asset missing from it contributes its balance.
func BuildBalanceSheet(accounts []Account, balances, marketValues map[uuid.UUID]decimal.Decimal) BalanceSheet {
	var bs BalanceSheet
	bs.Assets.Total = decimal.Zero
	bs.Liabilities.Total = decimal.Zero
	bs.Equity.Total = decimal.Zero
	bs.Income.Total = decimal.Zero
	bs.Expenses.Total = decimal.Zero
	bs.CurrentAssets = decimal.Zero
	bs.NonCurrentAssets = decimal.Zero
	bs.CurrentLiabilities = decimal.Zero
	bs.NonCurrentLiabilities = decimal.Zero
	bs.UnrealizedGains = decimal.Zero

	for _, acc := range accounts {
		balance, ok := balances[acc.ID]
		if !ok {
			balance = decimal.Zero
		}

		line := BalanceSheetLine{
			AccountID:    acc.ID,
			Name:         acc.Name,
			Balance:      balance,
			IsInvestment: acc.IsInvestment(),
		}

		switch acc.Type.Category {
		case CategoryAsset:
			value := balance
			if line.IsInvestment {
				if mv, ok := marketValues[acc.ID]; ok {
					value = mv
				}
				bs.UnrealizedGains = bs.UnrealizedGains.Add(value.Sub(balance))
			}
			line.MarketValue = value
			line.IsCurrent = nameMatchesAny(acc.Name, currentAssetHints)
			bs.Assets.Total = bs.Assets.Total.Add(value)
			if line.IsCurrent {
				bs.CurrentAssets = bs.CurrentAssets.Add(value)
			} else {
				bs.NonCurrentAssets = bs.NonCurrentAssets.Add(value)
			}
			if !balance.IsZero() {
				bs.Assets.Accounts = append(bs.Assets.Accounts, line)
			}

		case CategoryLiability:
			value := balance.Abs()
			line.MarketValue = value
			line.IsCurrent = nameMatchesAny(acc.Name, currentLiabilityHints)
			bs.Liabilities.Total = bs.Liabilities.Total.Add(value)
			if line.IsCurrent {
				bs.CurrentLiabilities = bs.CurrentLiabilities.Add(value)
			} else {
				bs.NonCurrentLiabilities = bs.NonCurrentLiabilities.Add(value)
			}
			if !balance.IsZero() {
				bs.Liabilities.Accounts = append(bs.Liabilities.Accounts, line)
			}

		case CategoryEquity:
			value := balance.Abs()
			line.MarketValue = value
			bs.Equity.Total = bs.Equity.Total.Add(value)
			if !balance.IsZero() {
				bs.Equity.Accounts = append(bs.Equity.Accounts, line)
			}

		case CategoryIncome:
			value := balance.Abs()
			line.MarketValue = value
			bs.Income.Total = bs.Income.Total.Add(value)
			if !balance.IsZero() {
				bs.Income.Accounts = append(bs.Income.Accounts, line)
			}

		case CategoryExpense:
			value := balance.Abs()
			line.MarketValue = value
			bs.Expenses.Total = bs.Expenses.Total.Add(value)
			if !balance.IsZero() {
				bs.Expenses.Accounts = append(bs.Expenses.Accounts, line)
			}
		}
	}

	bs.TotalAssets = bs.Assets.Total
	bs.TotalLiabilities = bs.Liabilities.Total
	bs.TotalEquity = bs.Equity.Total
	bs.TotalIncome = bs.Income.Total
	bs.TotalExpenses = bs.Expenses.Total
	bs.NetIncome = bs.TotalIncome.Sub(bs.TotalExpenses)
	bs.NetWorth = bs.TotalAssets.Sub(bs.TotalLiabilities)

	rhs := bs.TotalLiabilities.Add(bs.TotalEquity).Add(bs.UnrealizedGains).Add(bs.NetIncome)
	bs.IsBalanced = bs.TotalAssets.Sub(rhs).Abs().LessThanOrEqual(Tolerance)

	return bs
}
