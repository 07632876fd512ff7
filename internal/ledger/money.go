package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal-formatted monetary string into cents.
// The value must be strictly positive; anything beyond two fraction
// digits is rounded half away from zero.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is required")
	}
	// accept decimal comma from older clients
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("amount must be positive")
	}
	return d.Round(2).Shift(2).IntPart(), nil
}

// FormatCents renders cents as decimal text with exactly two fraction
// digits. Negative values keep their sign (the report balance may be
// negative).
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// SplitEven returns the per-installment amount for total cents divided
// into n parts, rounded half away from zero to whole cents. The
// remainder is not redistributed: n parts may not sum back to the
// total, and the last part is not adjusted to absorb the drift.
func SplitEven(totalCents int64, n int) int64 {
	total := decimal.New(totalCents, -2)
	per := total.DivRound(decimal.NewFromInt(int64(n)), 2)
	return per.Shift(2).IntPart()
}
