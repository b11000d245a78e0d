// Package core provides the transaction model and the input rules an expense
// must pass before it is stored.
//
// This file contains amount parsing and the exact-decimal formatting used by
// the stores and the recorder's result.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of fractional digits kept for money.
const AmountPlaces = 2

// maxAmountExponent bounds the decimal exponent accepted from text. Rounding
// and summing rescale to the smaller exponent and materialise that many
// digits, so "1e-100000000" is refused before any arithmetic.
const maxAmountExponent = 20

func parseBoundedDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if exp := d.Exponent(); exp < -maxAmountExponent || exp > maxAmountExponent {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParseAmount converts user input to an exact decimal amount in minor units.
//
// The input is trimmed and parsed as a decimal. Non-numbers fail with
// ErrInvalidAmount, as do exponents beyond maxAmountExponent in either
// direction. Values at or below zero fail with ErrNonPositiveAmount. The
// result is rounded to cents half-to-even, so a value that rounds down to
// zero is rejected as non-positive too.
//
// Examples:
//
//	ParseAmount("12.5")   -> 12.50, nil
//	ParseAmount("1.005")  -> 1.00, nil (half-even)
//	ParseAmount("1.015")  -> 1.02, nil (half-even)
//	ParseAmount("-5")     -> ErrNonPositiveAmount
//	ParseAmount("abc")    -> ErrInvalidAmount
//	ParseAmount("1e-50")  -> ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	d, ok := parseBoundedDecimal(s)
	if !ok {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, ErrNonPositiveAmount
	}
	d = d.RoundBank(AmountPlaces)
	if !d.IsPositive() {
		return decimal.Decimal{}, ErrNonPositiveAmount
	}
	return d, nil
}

// FormatAmount renders d keeping its scale, so "10.00" stays "10.00" and a
// zero sum renders as "0".
func FormatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// ParseStoredAmount parses an amount read back from a backing record. It
// requires a valid decimal string within the same exponent bound as
// ParseAmount; scale is kept as written.
//
// Amounts written by FormatAmount round-trip unchanged. A hand-edited amount
// in another spelling ("1e3", "+5") loads by value and is written back in
// canonical form ("1000", "5") on the next save, after which it is stable.
func ParseStoredAmount(s string) (decimal.Decimal, error) {
	d, ok := parseBoundedDecimal(s)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("invalid stored amount %q", s)
	}
	return d, nil
}
