package money

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// ClampPercent restricts a percentage to the [0, 100] range.
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.LessThan(zero) {
		return zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// Fraction converts a percentage into its multiplicative fraction (10 -> 0.1).
func Fraction(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// RoundCurrency rounds an amount to two decimal places. Internal arithmetic
// carries full precision; rounding happens only where a value is displayed or
// submitted, so per-line rounding error never accumulates into totals.
func RoundCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FloorZero clamps a negative amount to zero.
func FloorZero(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThan(zero) {
		return zero
	}
	return amount
}

// ApplyDiscount returns amount reduced by the given percentage, clamped to [0, 100].
func ApplyDiscount(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(1).Sub(Fraction(ClampPercent(percent))))
}
