package decimals

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWithDecimals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		giveRaw      string
		giveDecimals int
		want         string
	}{
		{name: "one and a half", giveRaw: "1500000000000000000", giveDecimals: 18, want: "1.5"},
		{name: "whole number", giveRaw: "2000000", giveDecimals: 6, want: "2"},
		{name: "below one unit", giveRaw: "15", giveDecimals: 4, want: "0.0015"},
		{name: "exactly decimals digits", giveRaw: "123456", giveDecimals: 6, want: "0.123456"},
		{name: "long fraction is shortened", giveRaw: "1123456789", giveDecimals: 9, want: "1.123456..."},
		{name: "leading zeros kept when shortening", giveRaw: "1000012345678", giveDecimals: 12, want: "1.0000123456..."},
		{name: "tiny value keeps leading zeros", giveRaw: "1234567891", giveDecimals: 18, want: "0.00000000123456..."},
		{name: "few significant digits are not shortened", giveRaw: "1000000012", giveDecimals: 9, want: "1.000000012"},
		{name: "zero", giveRaw: "0", giveDecimals: 18, want: "0"},
		{name: "empty", giveRaw: "", giveDecimals: 18, want: ""},
		{name: "no decimals", giveRaw: "12345", giveDecimals: 0, want: "12345"},
		{name: "not a digit string", giveRaw: "0x10", giveDecimals: 2, want: "0x10"},
		{name: "huge value", giveRaw: "115792089237316195423570985008687907853269984665640564039457584007913129639935", giveDecimals: 18,
			want: "115792089237316195423570985008687907853269984665640564039457.584007..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, FormatWithDecimals(tt.giveRaw, tt.giveDecimals))
		})
	}
}

func TestFormatExact_MatchesDecimalShift(t *testing.T) {
	t.Parallel()

	raws := []string{"1", "10", "1500000000000000000", "123456789012345678901234567890", "1000012345678", "999"}
	for _, raw := range raws {
		for _, d := range []int{1, 6, 9, 18, 30} {
			want := decimal.RequireFromString(raw).Shift(int32(-d)).String()
			assert.Equal(t, want, FormatExact(raw, d), "raw=%s decimals=%d", raw, d)
		}
	}
}

func TestParseFromDecimals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		give         string
		giveDecimals int
		want         string
	}{
		{name: "one and a half", give: "1.5", giveDecimals: 18, want: "1500000000000000000"},
		{name: "integer", give: "42", giveDecimals: 2, want: "4200"},
		{name: "fraction only", give: "0.0015", giveDecimals: 4, want: "15"},
		{name: "extra digits cut", give: "1.23456", giveDecimals: 2, want: "123"},
		{name: "zero", give: "0.0", giveDecimals: 6, want: "0"},
		{name: "empty", give: "", giveDecimals: 6, want: "0"},
		{name: "no decimals", give: "77", giveDecimals: 0, want: "77"},
		{name: "no decimals cuts the fraction", give: "1.5", giveDecimals: 0, want: "1"},
		{name: "no decimals strips leading zeros", give: "007", giveDecimals: 0, want: "7"},
		{name: "negative scale", give: "12.9", giveDecimals: -1, want: "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ParseFromDecimals(tt.give, tt.giveDecimals))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	raws := []string{"1", "1500000000000000000", "12345678", "100000001", "5000000000000000000000", "70"}
	for _, raw := range raws {
		for _, d := range []int{2, 6, 8, 18} {
			assert.Equal(t, raw, ParseFromDecimals(FormatExact(raw, d), d), "raw=%s decimals=%d", raw, d)
		}
	}
	// no shortening happens for fractions of at most 8 digits
	assert.Equal(t, "12345678", ParseFromDecimals(FormatWithDecimals("12345678", 8), 8))
}

func TestFormatUint(t *testing.T) {
	t.Parallel()

	got := FormatUint("1123456789", 9)
	assert.Equal(t, Info{Raw: "1123456789", Formatted: "1.123456...", FullPrecision: "1.123456789", Decimals: 9}, got)
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	got, err := ParseAmount(" 1.5 ", 18)
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", got)

	got, err = ParseAmount("12", 0)
	require.NoError(t, err)
	assert.Equal(t, "12", got)

	_, err = ParseAmount("abc", 18)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseAmount("-1", 18)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseAmount("1.234", 2)
	require.ErrorIs(t, err, ErrPrecisionLoss)
}
