// Package money holds small decimal helpers shared by the planning engines.
package money

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Hundred returns 100 as a decimal.
func Hundred() decimal.Decimal { return hundred }

// PercentOf returns pct% of amount, pct expressed in [0,100].
func PercentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// Ratio returns part/whole as a percentage, or zero when whole is not positive.
func Ratio(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// NonNegative clamps d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Clamp bounds d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Annual converts a monthly amount to annual.
func Annual(monthly decimal.Decimal) decimal.Decimal { return monthly.Mul(twelve) }

// Monthly converts an annual amount to monthly.
func Monthly(annual decimal.Decimal) decimal.Decimal { return annual.Div(twelve) }

// growthPrecision bounds the scale of compounded factors; exact integer powers
// of a 16-digit monthly rate otherwise carry thousands of digits.
const growthPrecision = 20

// Growth returns (1+rate)^periods. Periods must be a whole number.
func Growth(rate decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(periods))).Round(growthPrecision)
}

// ApproxEqual reports whether a and b differ by at most tol.
func ApproxEqual(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Format renders an amount with two decimals and no currency symbol, since the
// currency unit is left to the caller.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
