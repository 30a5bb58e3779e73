package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestLatestPrice_PicksMostRecentAtOrBefore(t *testing.T) {
	points := []PricePoint{
		{Price: decimal.NewFromInt(100), Date: day("2025-01-01")},
		{Price: decimal.NewFromInt(120), Date: day("2025-03-01")},
		{Price: decimal.NewFromInt(110), Date: day("2025-02-01")},
		{Price: decimal.NewFromInt(999), Date: day("2025-12-01")}, // future
	}

	got, ok := LatestPrice(points, day("2025-06-01"))
	require.True(t, ok)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(120)))
}

func TestLatestPrice_Empty(t *testing.T) {
	_, ok := LatestPrice(nil, time.Now())
	assert.False(t, ok)

	// only future observations is the same as none
	_, ok = LatestPrice([]PricePoint{{Price: decimal.NewFromInt(5), Date: day("2099-01-01")}}, day("2025-01-01"))
	assert.False(t, ok)
}

func TestLatestPrice_SameDateTieBreaksOnCreatedAt(t *testing.T) {
	older := PricePoint{Price: decimal.NewFromInt(90), Date: day("2025-04-01"), CreatedAt: day("2025-04-01")}
	newer := PricePoint{Price: decimal.NewFromInt(95), Date: day("2025-04-01"), CreatedAt: day("2025-04-02")}

	got, ok := LatestPrice([]PricePoint{older, newer}, day("2025-05-01"))
	require.True(t, ok)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(95)))

	// order independence
	got, ok = LatestPrice([]PricePoint{newer, older}, day("2025-05-01"))
	require.True(t, ok)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(95)))
}

func TestValueInvestment_MarksToMarket(t *testing.T) {
	latest := &PricePoint{Price: decimal.NewFromInt(120), Date: day("2025-05-01")}

	v := ValueInvestment(decimal.NewFromInt(1000), decimal.NewFromInt(10), latest)

	assert.True(t, v.MarketValue.Equal(decimal.NewFromInt(1200)), "market value %s", v.MarketValue)
	assert.True(t, v.UnrealizedGain.Equal(decimal.NewFromInt(200)), "gain %s", v.UnrealizedGain)
	assert.True(t, v.UnrealizedGainPercentage.Equal(decimal.NewFromInt(20)), "pct %s", v.UnrealizedGainPercentage)
	assert.True(t, v.HasPrice)
}

func TestValueInvestment_NoPriceFallsBackToCost(t *testing.T) {
	v := ValueInvestment(decimal.NewFromInt(1000), decimal.NewFromInt(10), nil)

	assert.True(t, v.MarketValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, v.UnrealizedGain.IsZero())
	assert.True(t, v.UnrealizedGainPercentage.IsZero())
	assert.False(t, v.HasPrice)
}

func TestValueInvestment_NoUnitsWithPrice(t *testing.T) {
	latest := &PricePoint{Price: decimal.NewFromInt(50)}
	v := ValueInvestment(decimal.Zero, decimal.Zero, latest)
	assert.True(t, v.MarketValue.IsZero())
}

func TestValueInvestment_NegativeBalanceClamped(t *testing.T) {
	// fully divested: net cash contributed went negative, but the
	// investor-facing figures treat invested as zero
	latest := &PricePoint{Price: decimal.NewFromInt(10)}
	v := ValueInvestment(decimal.NewFromInt(-200), decimal.Zero, latest)

	assert.True(t, v.MarketValue.IsZero())
	assert.True(t, v.UnrealizedGain.IsZero())
	assert.True(t, v.UnrealizedGainPercentage.IsZero())
}

func TestValueInvestment_Idempotent(t *testing.T) {
	latest := &PricePoint{Price: decimal.RequireFromString("123.45")}
	balance := decimal.RequireFromString("9876.54")
	units := decimal.RequireFromString("80.5")

	first := ValueInvestment(balance, units, latest)
	second := ValueInvestment(balance, units, latest)

	assert.True(t, first.MarketValue.Equal(second.MarketValue))
	assert.True(t, first.UnrealizedGain.Equal(second.UnrealizedGain))
	assert.True(t, first.UnrealizedGainPercentage.Equal(second.UnrealizedGainPercentage))
}
