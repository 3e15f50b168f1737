package money

import (
	"testing"

	pkgerrors "github.com/oakdonuts/pos-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input string
		cents int64
	}{
		{"2.50", 250},
		{"2.5", 250},
		{"3", 300},
		{"0", 0},
		{"0.00", 0},
		{" 2.75 ", 275},
		{"1234.56", 123456},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			cents, err := ParseAmount(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.cents, cents)
		})
	}
}

func TestParseAmountRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"not a number", "donut"},
		{"negative", "-1.00"},
		{"sub-cent precision", "2.505"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAmount(tc.input)
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "2.50", FormatCents(250))
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "1234.56", FormatCents(123456))
}

func TestFormatCentsUSD(t *testing.T) {
	assert.Equal(t, "$2.50", FormatCentsUSD(250))
}

func TestSumCents(t *testing.T) {
	assert.Equal(t, int64(0), SumCents())
	assert.Equal(t, int64(800), SumCents(250, 250, 300))
}
