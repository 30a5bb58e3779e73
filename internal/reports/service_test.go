package reports

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/ledger"
)

type fakeSource struct {
	accounts []ledger.Account
	entries  map[uuid.UUID][]ledger.Entry
	prices   map[uuid.UUID][]ledger.PricePoint

	priceCalls atomic.Int32
}

func (f *fakeSource) ActiveAccounts(_ context.Context, _ string) ([]ledger.Account, error) {
	return f.accounts, nil
}

func (f *fakeSource) EntriesByAccount(_ context.Context, _ string) (map[uuid.UUID][]ledger.Entry, error) {
	return f.entries, nil
}

func (f *fakeSource) PricePoints(_ context.Context, _ string, accountID uuid.UUID) ([]ledger.PricePoint, error) {
	f.priceCalls.Add(1)
	return f.prices[accountID], nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sourceAccount(name, typeName string, cat ledger.Category, normal ledger.Side) ledger.Account {
	return ledger.Account{
		ID:   uuid.New(),
		Name: name,
		Type: ledger.AccountType{
			ID:            uuid.New(),
			Name:          typeName,
			Category:      cat,
			NormalBalance: normal,
		},
		IsActive: true,
	}
}

func cashEntry(acc uuid.UUID, side ledger.Side, amount string) ledger.Entry {
	return ledger.Entry{
		AccountID: acc,
		Side:      side,
		Quantity:  decimal.NewFromInt(1),
		Amount:    dec(amount),
	}
}

func TestSnapshot_RecomputesBalancesAndValues(t *testing.T) {
	bank := sourceAccount("Bank", "Bank", ledger.CategoryAsset, ledger.Debit)
	fund := sourceAccount("Index Fund", "Mutual Fund", ledger.CategoryAsset, ledger.Debit)

	src := &fakeSource{
		accounts: []ledger.Account{bank, fund},
		entries: map[uuid.UUID][]ledger.Entry{
			bank.ID: {
				cashEntry(bank.ID, ledger.Debit, "5000"),
				cashEntry(bank.ID, ledger.Credit, "1000"),
			},
			fund.ID: {
				{AccountID: fund.ID, Side: ledger.Debit, Quantity: dec("10"), Price: dec("100"), Amount: dec("1000")},
			},
		},
		prices: map[uuid.UUID][]ledger.PricePoint{
			fund.ID: {{Price: dec("120"), Date: time.Now().AddDate(0, 0, -1)}},
		},
	}

	snap, err := NewService(src).Snapshot(context.Background(), "user", time.Now())
	require.NoError(t, err)

	assert.True(t, snap.Balances[bank.ID].Equal(dec("4000")))
	assert.True(t, snap.Balances[fund.ID].Equal(dec("1000")))
	assert.True(t, snap.MarketValues[fund.ID].Equal(dec("1200")))

	require.Len(t, snap.Investments, 1)
	inv := snap.Investments[0]
	assert.True(t, inv.Units.Equal(dec("10")))
	assert.True(t, inv.UnrealizedGain.Equal(dec("200")))
	assert.True(t, inv.UnrealizedGainPercentage.Equal(dec("20")))
	assert.True(t, inv.HasPrice)

	// only the investment account triggers a price lookup
	assert.Equal(t, int32(1), src.priceCalls.Load())
}

func TestSnapshot_UnresolvedTypeReportedUnavailable(t *testing.T) {
	bank := sourceAccount("Bank", "Bank", ledger.CategoryAsset, ledger.Debit)
	broken := ledger.Account{ID: uuid.New(), Name: "Broken", IsActive: true}

	src := &fakeSource{
		accounts: []ledger.Account{bank, broken},
		entries: map[uuid.UUID][]ledger.Entry{
			bank.ID: {cashEntry(bank.ID, ledger.Debit, "100")},
		},
	}

	snap, err := NewService(src).Snapshot(context.Background(), "user", time.Now())
	require.NoError(t, err)

	_, resolved := snap.Balances[broken.ID]
	assert.False(t, resolved, "unknown balance must not appear as zero")
	require.Len(t, snap.Unavailable, 1)
	assert.Equal(t, broken.ID, snap.Unavailable[0].AccountID)
}

func TestSnapshot_UnpricedInvestmentKeepsCostBasis(t *testing.T) {
	fund := sourceAccount("Unpriced Fund", "Stock", ledger.CategoryAsset, ledger.Debit)

	src := &fakeSource{
		accounts: []ledger.Account{fund},
		entries: map[uuid.UUID][]ledger.Entry{
			fund.ID: {
				{AccountID: fund.ID, Side: ledger.Debit, Quantity: dec("5"), Price: dec("200"), Amount: dec("1000")},
			},
		},
	}

	snap, err := NewService(src).Snapshot(context.Background(), "user", time.Now())
	require.NoError(t, err)

	assert.True(t, snap.MarketValues[fund.ID].Equal(dec("1000")))
	require.Len(t, snap.Investments, 1)
	assert.False(t, snap.Investments[0].HasPrice)
}

func TestBalanceSheet_EndToEnd(t *testing.T) {
	bank := sourceAccount("Savings Bank", "Bank", ledger.CategoryAsset, ledger.Debit)
	fund := sourceAccount("Fund", "Mutual Fund", ledger.CategoryAsset, ledger.Debit)
	opening := sourceAccount("Opening Balances", "Equity", ledger.CategoryEquity, ledger.Credit)

	src := &fakeSource{
		accounts: []ledger.Account{bank, fund, opening},
		entries: map[uuid.UUID][]ledger.Entry{
			bank.ID:    {cashEntry(bank.ID, ledger.Debit, "4000")},
			fund.ID:    {{AccountID: fund.ID, Side: ledger.Debit, Quantity: dec("10"), Price: dec("100"), Amount: dec("1000")}},
			opening.ID: {cashEntry(opening.ID, ledger.Credit, "5000")},
		},
		prices: map[uuid.UUID][]ledger.PricePoint{
			fund.ID: {{Price: dec("150"), Date: time.Now().AddDate(0, 0, -2)}},
		},
	}

	bs, unavailable, err := NewService(src).BalanceSheet(context.Background(), "user", time.Now())
	require.NoError(t, err)
	assert.Empty(t, unavailable)

	// 4000 cash + 1500 marked-to-market fund
	assert.True(t, bs.TotalAssets.Equal(dec("5500")), "assets %s", bs.TotalAssets)
	assert.True(t, bs.UnrealizedGains.Equal(dec("500")))
	assert.True(t, bs.TotalEquity.Equal(dec("5000")))
	// 5500 = 0 + 5000 + 500 + 0
	assert.True(t, bs.IsBalanced)
}

func TestAccountTree_RollsUp(t *testing.T) {
	root := sourceAccount("Assets", "Bank", ledger.CategoryAsset, ledger.Debit)
	root.IsPlaceholder = true
	child := sourceAccount("Bank", "Bank", ledger.CategoryAsset, ledger.Debit)
	child.ParentID = &root.ID

	src := &fakeSource{
		accounts: []ledger.Account{root, child},
		entries: map[uuid.UUID][]ledger.Entry{
			child.ID: {cashEntry(child.ID, ledger.Debit, "250")},
		},
	}

	tree, unavailable, err := NewService(src).AccountTree(context.Background(), "user", time.Now())
	require.NoError(t, err)
	assert.Empty(t, unavailable)
	require.Len(t, tree, 1)
	assert.True(t, tree[0].Total.Equal(dec("250")))
}
