package tui

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"50", "$50.00"},
		{"45750.5", "$45,750.50"},
		{"0", "$0.00"},
		{"999", "$999.00"},
		{"1000", "$1,000.00"},
		{"1234567.89", "$1,234,567.89"},
		{"-250.25", "-$250.25"},
		{"4.5", "$4.50"},
	}
	for _, c := range cases {
		got := FormatAmount("$", decimal.RequireFromString(c.in))
		require.Equal(t, c.want, got, "input %s", c.in)
	}
}

func TestFormatSigned(t *testing.T) {
	t.Parallel()

	require.Equal(t, "+$2,500.00", FormatSigned("$", "credit", decimal.NewFromInt(2500)))
	require.Equal(t, "-$150.00", FormatSigned("$", "debit", decimal.NewFromInt(150)))
}
