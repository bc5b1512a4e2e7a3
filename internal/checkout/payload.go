package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod names how the sale was settled. Only cash carries tender
// reconciliation; anything else is recorded as-is.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash
}

// PayloadLine is one line of the submitted sale: product identity, quantity
// and the discounted unit price the sale was rung up at.
type PayloadLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Payload is the transaction submission handed to the sales service once a
// tender settles. Amounts are rounded to currency precision; the server-side
// ledger recomputes and must agree.
type Payload struct {
	Lines               []PayloadLine   `json:"lines"`
	PaymentMethod       PaymentMethod   `json:"payment_method"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	OrderDiscountAmount decimal.Decimal `json:"order_discount_amount"`
	TaxTotal            decimal.Decimal `json:"tax_total"`
	GrandTotal          decimal.Decimal `json:"grand_total"`
	TenderedAmount      decimal.Decimal `json:"tendered_amount"`
	ChangeDue           decimal.Decimal `json:"change_due"`
}
