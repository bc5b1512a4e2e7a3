package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillworks/pos-terminal/pkg/money"
)

// TaxRule is the named tax percentage attached to a product, if any.
type TaxRule struct {
	Name    string          `json:"name"`
	Percent decimal.Decimal `json:"percent"`
}

// Product is the catalog snapshot a line is created from. Stock is the
// advisory ceiling at the moment of the lookup, not a live value.
type Product struct {
	ID        uuid.UUID
	Name      string
	SalePrice decimal.Decimal
	Stock     int
	Tax       *TaxRule
}

// Line is one product entry in the in-progress sale. LineID is assigned at
// insertion and stays stable across mutations; ProductID is unique across the
// cart (adding the same product again merges into the existing line).
type Line struct {
	LineID              uuid.UUID       `json:"line_id"`
	ProductID           uuid.UUID       `json:"product_id"`
	Name                string          `json:"name"`
	UnitPriceOriginal   decimal.Decimal `json:"unit_price_original"`
	UnitPriceEffective  decimal.Decimal `json:"unit_price_effective"`
	Quantity            int             `json:"quantity"`
	ItemDiscountPercent decimal.Decimal `json:"item_discount_percent"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	StockCeiling        int             `json:"stock_ceiling"`
	Tax                 *TaxRule        `json:"tax,omitempty"`
}

func newLine(p Product, quantity int) Line {
	l := Line{
		LineID:              uuid.New(),
		ProductID:           p.ID,
		Name:                p.Name,
		UnitPriceOriginal:   p.SalePrice,
		UnitPriceEffective:  p.SalePrice,
		Quantity:            quantity,
		ItemDiscountPercent: decimal.Zero,
		StockCeiling:        p.Stock,
		Tax:                 p.Tax,
	}
	l.recompute()
	return l
}

// recompute re-derives the effective unit price and subtotal. Subtotal is
// never settable on its own.
func (l *Line) recompute() {
	l.ItemDiscountPercent = money.ClampPercent(l.ItemDiscountPercent)
	l.UnitPriceEffective = money.ApplyDiscount(l.UnitPriceOriginal, l.ItemDiscountPercent)
	l.Subtotal = l.UnitPriceEffective.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
