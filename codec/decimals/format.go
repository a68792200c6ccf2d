// Package decimals converts integer token amounts to and from their human decimal form.
//
// All conversions work on decimal digit strings, so amounts of any size keep full precision.
package decimals

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// maxFractionDigits is the longest fractional part FormatWithDecimals shows in full.
	maxFractionDigits = 8
	// significantDigits is how many digits after the leading zeros are kept once a fraction is
	// shortened.
	significantDigits = 6
	// Ellipsis marks a shortened fraction.
	Ellipsis = "..."
)

var (
	ErrInvalidAmount = errors.New("invalid decimal amount")
	ErrPrecisionLoss = errors.New("amount has more fractional digits than the token supports")
)

// Info is the decimal view of an integer amount.
type Info struct {
	Raw           string `json:"raw" yaml:"raw"`
	Formatted     string `json:"formatted" yaml:"formatted"`
	FullPrecision string `json:"fullPrecision" yaml:"fullPrecision"`
	Decimals      int    `json:"decimals" yaml:"decimals"`
}

// FormatWithDecimals places a decimal point decimals digits from the right of the unscaled
// integer raw, e.g. ("1500000000000000000", 18) gives "1.5". Trailing fractional zeros are
// dropped. A fraction longer than 8 digits is shortened to its leading zeros plus 6 significant
// digits, followed by "..." when digits were cut.
//
// Empty input, "0" and a scale of 0 are returned unchanged, as is anything that is not a digit
// string.
func FormatWithDecimals(raw string, decimals int) string {
	intPart, frac, ok := split(raw, decimals)
	if !ok {
		return raw
	}
	if frac == "" {
		return intPart
	}

	return intPart + "." + shorten(frac)
}

// FormatExact is FormatWithDecimals without shortening long fractions.
func FormatExact(raw string, decimals int) string {
	intPart, frac, ok := split(raw, decimals)
	if !ok {
		return raw
	}
	if frac == "" {
		return intPart
	}

	return intPart + "." + frac
}

// FormatUint returns both the display and the exact decimal form of raw.
func FormatUint(raw string, decimals int) Info {
	return Info{
		Raw:           raw,
		Formatted:     FormatWithDecimals(raw, decimals),
		FullPrecision: FormatExact(raw, decimals),
		Decimals:      decimals,
	}
}

// ParseFromDecimals is the inverse of FormatWithDecimals: the fractional part of display is
// right-padded or cut to exactly decimals digits and joined to the integer part, with leading
// zeros removed. An empty result is "0". A negative scale is taken as 0, which drops the
// fractional part.
func ParseFromDecimals(display string, decimals int) string {
	decimals = max(decimals, 0)

	intPart, frac, _ := strings.Cut(display, ".")
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	}
	frac = frac[:decimals]

	out := strings.TrimLeft(intPart+frac, "0")
	if out == "" {
		return "0"
	}

	return out
}

// ParseAmount is ParseFromDecimals for user input: display must be a non-negative decimal
// number whose fractional part fits in decimals digits.
func ParseAmount(display string, decimals int) (string, error) {
	display = strings.TrimSpace(display)
	d, err := decimal.NewFromString(display)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidAmount, display, err)
	}
	if d.IsNegative() {
		return "", fmt.Errorf("%w: %q is negative", ErrInvalidAmount, display)
	}
	if decimals < 0 {
		return "", fmt.Errorf("%w: negative scale %d", ErrInvalidAmount, decimals)
	}
	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return "", fmt.Errorf("%w: %q with %d decimals", ErrPrecisionLoss, display, decimals)
	}

	return scaled.BigInt().String(), nil
}

// split returns the integer and trailing-zero-trimmed fractional digits of raw scaled down by
// decimals. ok is false when raw should be shown unchanged.
func split(raw string, decimals int) (intPart, frac string, ok bool) {
	if raw == "" || raw == "0" || decimals <= 0 || !isDigits(raw) {
		return "", "", false
	}

	digits := strings.TrimLeft(raw, "0")
	if digits == "" {
		return "0", "", true
	}
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	pos := len(digits) - decimals

	return digits[:pos], strings.TrimRight(digits[pos:], "0"), true
}

func shorten(frac string) string {
	if len(frac) <= maxFractionDigits {
		return frac
	}
	first := strings.IndexFunc(frac, func(r rune) bool { return r != '0' })
	if first < 0 {
		return frac
	}
	end := first + significantDigits
	if end >= len(frac) {
		return frac
	}

	return frac[:end] + Ellipsis
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
