package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Action is the tagged union of cart transitions. Every mutation of the cart
// flows through Apply with one of these variants.
type Action interface {
	actionName() string
}

// AddItem merges quantity into an existing line for the product, or creates a
// new line from the catalog snapshot.
type AddItem struct {
	Product  Product
	Quantity int
}

// RemoveItem deletes the line for the product unconditionally.
type RemoveItem struct {
	ProductID uuid.UUID
}

// SetQuantity replaces the quantity on the product's line. Zero or negative
// removes the line.
type SetQuantity struct {
	ProductID uuid.UUID
	Quantity  int
}

// ApplyItemDiscount sets the per-line discount percentage, clamped to [0, 100].
type ApplyItemDiscount struct {
	ProductID uuid.UUID
	Percent   decimal.Decimal
}

// ApplyOrderDiscount sets the order-level discount percentage, clamped to [0, 100].
type ApplyOrderDiscount struct {
	Percent decimal.Decimal
}

// Clear resets the cart to empty.
type Clear struct{}

func (AddItem) actionName() string            { return "add_item" }
func (RemoveItem) actionName() string         { return "remove_item" }
func (SetQuantity) actionName() string        { return "set_quantity" }
func (ApplyItemDiscount) actionName() string  { return "apply_item_discount" }
func (ApplyOrderDiscount) actionName() string { return "apply_order_discount" }
func (Clear) actionName() string              { return "clear" }

// Name reports the metric/log label for an action.
func Name(a Action) string {
	if a == nil {
		return "unknown"
	}
	return a.actionName()
}
