package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount(" 123.45 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("123.45")))

	_, err = ParseAmount("")
	assert.Error(t, err)

	_, err = ParseAmount("abc")
	assert.Error(t, err)

	_, err = ParseAmount("1.005")
	assert.Error(t, err, "three decimal places rejected")

	d, err = ParseAmount("-50")
	require.NoError(t, err)
	assert.True(t, d.IsNegative())
}

func TestParsePositiveAmount(t *testing.T) {
	_, err := ParsePositiveAmount("0")
	assert.Error(t, err)

	_, err = ParsePositiveAmount("-1")
	assert.Error(t, err)

	d, err := ParsePositiveAmount("0.01")
	require.NoError(t, err)
	assert.True(t, d.IsPositive())
}

func TestFormatINR(t *testing.T) {
	cases := map[string]string{
		"0":           "0.00",
		"999":         "999.00",
		"1000":        "1,000.00",
		"123456":      "1,23,456.00",
		"1234567.89":  "12,34,567.89",
		"-1234567.89": "-12,34,567.89",
		"10000000":    "1,00,00,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatINR(decimal.RequireFromString(in)), in)
	}
}
