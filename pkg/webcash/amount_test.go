package webcash_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/webcash/walletd/pkg/webcash"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in       string
		expected webcash.Amount
	}{
		{"0.00000001", 1},
		{"0.03", 3000000},
		{"1", 100000000},
		{"1.5", 150000000},
		{"500", 50000000000},
		{"-1", -100000000},
		{"92233720368.54775807", 9223372036854775807},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			amount, err := webcash.ParseAmount(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.expected, amount)
		})
	}
}

func TestParseAmountRejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"-",
		".5",
		"01",
		"1.",
		"1.f",
		"abc",
		"1.000000001",  // nine fractional digits
		"0.123456789",  // nine fractional digits
		"92233720369",  // > int64 once scaled
		"1e5",
		"+1",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := webcash.ParseAmount(in)
			require.Error(t, err)
		})
	}
}

func TestAmountString(t *testing.T) {
	tests := []struct {
		in       webcash.Amount
		expected string
	}{
		{1, "0.00000001"},
		{3000000, "0.03"},
		{100000000, "1"},
		{150000000, "1.5"},
		{50000000000, "500"},
		{-100000000, "-1"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.in.String())
	}
}

func TestAmountRoundTrip(t *testing.T) {
	for _, amount := range []webcash.Amount{1, 99, 3000000, 100000000, 123456789012} {
		parsed, err := webcash.ParseAmount(amount.String())
		require.NoError(t, err)
		require.Equal(t, amount, parsed)
	}
}
