// Package money provides an exact fixed-point currency amount with two
// decimal places. Amounts are stored as an integer count of minor units
// (cents) so arithmetic never drifts the way binary floating point does.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned when an amount cannot be constructed from
// its input: malformed text, more than two decimal places, a negative
// value, or a non-finite float.
var ErrInvalidAmount = errors.New("invalid amount")

// Money is a currency amount in minor units (cents).
//
// Constructors reject negative values; arithmetic results may still be
// negative (e.g. signed netting accumulators), which is intentional.
type Money int64

// Parse converts a decimal string like "12.34", "12.3" or "12" into Money.
// At most two fraction digits are allowed. Signs are rejected.
func Parse(s string) (Money, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	if s[0] == '+' || s[0] == '-' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && frac == "") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q has more than two decimal places", ErrInvalidAmount, s)
	}

	units, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	// units*100+cents must stay within int64.
	if units > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, s)
	}

	var cents uint64
	if hasFrac {
		// Pad "5" to "50" so tenths land in the right column.
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseUint(frac, 10, 63)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}

	return Money(units*100 + cents), nil
}

// FromFloat converts a binary float into Money, rounding half away from
// zero at the cent. NaN, infinities and negative values are rejected.
// Prefer Parse wherever the input is still text.
func FromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: non-finite value", ErrInvalidAmount)
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: negative value %v", ErrInvalidAmount, f)
	}
	cents := math.Round(f * 100)
	if cents >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: value %v is too large", ErrInvalidAmount, f)
	}
	return Money(cents), nil
}

// Add returns m + other.
func (m Money) Add(other Money) Money { return m + other }

// Sub returns m - other.
func (m Money) Sub(other Money) Money { return m - other }

// Neg returns -m.
func (m Money) Neg() Money { return -m }

// Cmp compares m and other, returning -1, 0 or +1.
func (m Money) Cmp(other Money) int {
	switch {
	case m < other:
		return -1
	case m > other:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m == 0 }

// IsPositive reports whether the amount is strictly positive.
func (m Money) IsPositive() bool { return m > 0 }

// MinorUnits returns the raw cent count.
func (m Money) MinorUnits() int64 { return int64(m) }

// SplitEven divides m into n shares that sum to m exactly. Every share is
// m/n rounded down; the remainder is handed out one cent at a time to the
// first shares, so no two shares differ by more than one cent.
// Returns nil if n <= 0.
func (m Money) SplitEven(n int) []Money {
	if n <= 0 {
		return nil
	}
	base := m / Money(n)
	remainder := m % Money(n)
	shares := make([]Money, n)
	for i := range shares {
		shares[i] = base
		if Money(i) < remainder {
			shares[i]++
		}
	}
	return shares
}

// String renders the amount as a plain decimal, e.g. "12.34" or "-0.05".
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON renders the amount as a decimal string so clients never see
// a binary float.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts a decimal string ("12.34"). Bare JSON numbers are
// rejected: they have already been through a float64 and cannot be trusted
// to the cent.
func (m *Money) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: amount must be a decimal string", ErrInvalidAmount)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
