package cart

import (
	"github.com/shopspring/decimal"

	"github.com/tillworks/pos-terminal/pkg/money"
)

// Totals is the aggregate tuple derived from the line list and order
// discount. Values carry full precision; round only at the display or
// submission boundary via Rounded.
type Totals struct {
	Subtotal            decimal.Decimal `json:"subtotal"`
	OrderDiscountAmount decimal.Decimal `json:"order_discount_amount"`
	TaxTotal            decimal.Decimal `json:"tax_total"`
	GrandTotal          decimal.Decimal `json:"grand_total"`
}

// ComputeTotals derives the aggregates from scratch. It is a pure function of
// its inputs: the order discount is applied to the pre-tax subtotal, tax is
// computed against the discounted base (discount before tax, matching the
// ledger side), and the grand total is floored at zero.
func ComputeTotals(lines []Line, orderDiscountPercent decimal.Decimal) Totals {
	orderDiscountPercent = money.ClampPercent(orderDiscountPercent)

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
	}

	discountAmount := subtotal.Mul(money.Fraction(orderDiscountPercent))
	discountedBase := subtotal.Sub(discountAmount)

	taxTotal := decimal.Zero
	if subtotal.IsPositive() {
		for _, l := range lines {
			if l.Tax == nil {
				continue
			}
			// The line's share of the discounted base keeps per-line tax
			// proportional after the order discount.
			taxedBase := l.Subtotal.Div(subtotal).Mul(discountedBase)
			taxTotal = taxTotal.Add(taxedBase.Mul(money.Fraction(l.Tax.Percent)))
		}
	}

	return Totals{
		Subtotal:            subtotal,
		OrderDiscountAmount: discountAmount,
		TaxTotal:            taxTotal,
		GrandTotal:          money.FloorZero(discountedBase.Add(taxTotal)),
	}
}

// Rounded returns the totals at two-decimal currency precision.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:            money.RoundCurrency(t.Subtotal),
		OrderDiscountAmount: money.RoundCurrency(t.OrderDiscountAmount),
		TaxTotal:            money.RoundCurrency(t.TaxTotal),
		GrandTotal:          money.RoundCurrency(t.GrandTotal),
	}
}
