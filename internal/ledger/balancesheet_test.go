package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryAccount(name, typeName string, cat Category, normal Side) Account {
	return Account{
		ID:   uuid.New(),
		Name: name,
		Type: AccountType{
			ID:            uuid.New(),
			Name:          typeName,
			Category:      cat,
			NormalBalance: normal,
		},
		IsActive: true,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBuildBalanceSheet_Identity(t *testing.T) {
	bank := categoryAccount("HDFC Bank", "Bank", CategoryAsset, Debit)
	fund := categoryAccount("Index Fund", "Mutual Fund", CategoryAsset, Debit)
	card := categoryAccount("Credit Card", "Credit Card", CategoryLiability, Credit)
	opening := categoryAccount("Opening Balances", "Equity", CategoryEquity, Credit)
	salary := categoryAccount("Salary", "Income", CategoryIncome, Credit)
	rent := categoryAccount("Rent", "Expense", CategoryExpense, Debit)

	accounts := []Account{bank, fund, card, opening, salary, rent}
	balances := map[uuid.UUID]decimal.Decimal{
		bank.ID:    dec("6000"),
		fund.ID:    dec("3000"),
		card.ID:    dec("2000"),
		opening.ID: dec("5000"),
		salary.ID:  dec("4000"),
		rent.ID:    dec("2000"),
	}
	marketValues := map[uuid.UUID]decimal.Decimal{
		fund.ID: dec("4000"), // 1000 unrealized gain
	}

	bs := BuildBalanceSheet(accounts, balances, marketValues)

	assert.True(t, bs.TotalAssets.Equal(dec("10000")), "assets %s", bs.TotalAssets)
	assert.True(t, bs.TotalLiabilities.Equal(dec("2000")))
	assert.True(t, bs.TotalEquity.Equal(dec("5000")))
	assert.True(t, bs.UnrealizedGains.Equal(dec("1000")))
	assert.True(t, bs.NetIncome.Equal(dec("2000")))
	assert.True(t, bs.NetWorth.Equal(dec("8000")))

	// 10000 = 2000 + 5000 + 1000 + 2000
	assert.True(t, bs.IsBalanced)
}

func TestBuildBalanceSheet_Unbalanced(t *testing.T) {
	bank := categoryAccount("Bank", "Bank", CategoryAsset, Debit)
	bs := BuildBalanceSheet([]Account{bank}, map[uuid.UUID]decimal.Decimal{bank.ID: dec("100")}, nil)
	assert.False(t, bs.IsBalanced)
}

func TestBuildBalanceSheet_ZeroBalanceExcludedFromLists(t *testing.T) {
	bank := categoryAccount("Bank", "Bank", CategoryAsset, Debit)
	empty := categoryAccount("Dormant", "Bank", CategoryAsset, Debit)

	bs := BuildBalanceSheet(
		[]Account{bank, empty},
		map[uuid.UUID]decimal.Decimal{bank.ID: dec("100"), empty.ID: decimal.Zero},
		nil,
	)

	require.Len(t, bs.Assets.Accounts, 1)
	assert.Equal(t, bank.ID, bs.Assets.Accounts[0].AccountID)
	assert.True(t, bs.TotalAssets.Equal(dec("100")))
}

func TestBuildBalanceSheet_LiabilityUsesAbsolute(t *testing.T) {
	loan := categoryAccount("Home Loan", "Loan", CategoryLiability, Credit)

	// a liability balance surfaced with a negative sign still sums positive
	bs := BuildBalanceSheet([]Account{loan}, map[uuid.UUID]decimal.Decimal{loan.ID: dec("-1500")}, nil)
	assert.True(t, bs.TotalLiabilities.Equal(dec("1500")))
}

func TestBuildBalanceSheet_InvestmentWithoutMarketValue(t *testing.T) {
	fund := categoryAccount("Fund", "Mutual Fund", CategoryAsset, Debit)

	bs := BuildBalanceSheet([]Account{fund}, map[uuid.UUID]decimal.Decimal{fund.ID: dec("900")}, nil)

	// no price on record: the holding contributes its cost basis
	assert.True(t, bs.TotalAssets.Equal(dec("900")))
	assert.True(t, bs.UnrealizedGains.IsZero())
}

func TestBuildBalanceSheet_CurrentSplitHeuristic(t *testing.T) {
	bank := categoryAccount("Savings Account", "Bank", CategoryAsset, Debit)
	fund := categoryAccount("Index Fund", "Mutual Fund", CategoryAsset, Debit)

	bs := BuildBalanceSheet(
		[]Account{bank, fund},
		map[uuid.UUID]decimal.Decimal{bank.ID: dec("500"), fund.ID: dec("300")},
		nil,
	)

	assert.True(t, bs.CurrentAssets.Equal(dec("500")))
	assert.True(t, bs.NonCurrentAssets.Equal(dec("300")))
}

func TestBuildBalanceSheet_Idempotent(t *testing.T) {
	bank := categoryAccount("Bank", "Bank", CategoryAsset, Debit)
	fund := categoryAccount("Fund", "Stock", CategoryAsset, Debit)
	accounts := []Account{bank, fund}
	balances := map[uuid.UUID]decimal.Decimal{bank.ID: dec("123.45"), fund.ID: dec("678.90")}
	marketValues := map[uuid.UUID]decimal.Decimal{fund.ID: dec("700.00")}

	first := BuildBalanceSheet(accounts, balances, marketValues)
	second := BuildBalanceSheet(accounts, balances, marketValues)

	assert.True(t, first.TotalAssets.Equal(second.TotalAssets))
	assert.True(t, first.UnrealizedGains.Equal(second.UnrealizedGains))
	assert.True(t, first.NetWorth.Equal(second.NetWorth))
	assert.Equal(t, first.IsBalanced, second.IsBalanced)
	assert.Equal(t, len(first.Assets.Accounts), len(second.Assets.Accounts))
}
