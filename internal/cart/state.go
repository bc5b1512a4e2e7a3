package cart

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillworks/pos-terminal/pkg/money"
)

// Signal is the advisory outcome of a rejected or partially-informative
// transition. Rule violations never surface as errors; the caller decides how
// to present the signal.
type Signal string

const (
	SignalNone              Signal = ""
	SignalStockInsufficient Signal = "stock_insufficient"
	SignalUnknownLine       Signal = "unknown_line"
)

// State holds the ordered line list, the order-level discount and the derived
// aggregates. It is a value: Apply never mutates its receiver's line slice.
type State struct {
	Lines                []Line          `json:"lines"`
	OrderDiscountPercent decimal.Decimal `json:"order_discount_percent"`
	Totals               Totals          `json:"totals"`
}

// Empty returns the state a checkout session starts from.
func Empty() State {
	return State{Totals: ComputeTotals(nil, decimal.Zero)}
}

// IsEmpty reports whether the cart holds no lines.
func (s State) IsEmpty() bool {
	return len(s.Lines) == 0
}

// LineFor returns the line for a product and its index, or -1.
func (s State) LineFor(productID uuid.UUID) (Line, int) {
	for i, l := range s.Lines {
		if l.ProductID == productID {
			return l, i
		}
	}
	return Line{}, -1
}

// Apply runs one transition and recomputes the aggregates. The returned state
// shares no line storage with the input. A non-empty Signal means the
// transition was rejected (or targeted a missing line) and the returned state
// equals the input. The error return is reserved for malformed input from the
// caller, never for business-rule violations.
func Apply(s State, a Action) (State, Signal, error) {
	switch act := a.(type) {
	case AddItem:
		return applyAdd(s, act)
	case RemoveItem:
		return applyRemove(s, act)
	case SetQuantity:
		return applySetQuantity(s, act)
	case ApplyItemDiscount:
		return applyItemDiscount(s, act)
	case ApplyOrderDiscount:
		next := s.withLines(cloneLines(s.Lines))
		next.OrderDiscountPercent = money.ClampPercent(act.Percent)
		return recomputed(next), SignalNone, nil
	case Clear:
		return Empty(), SignalNone, nil
	default:
		return s, SignalNone, fmt.Errorf("unsupported action %T", a)
	}
}

func applyAdd(s State, act AddItem) (State, Signal, error) {
	if act.Quantity <= 0 {
		return s, SignalNone, fmt.Errorf("add quantity must be positive, got %d", act.Quantity)
	}
	if act.Product.ID == uuid.Nil {
		return s, SignalNone, fmt.Errorf("product id is required")
	}

	if existing, idx := s.LineFor(act.Product.ID); idx >= 0 {
		// The action carries a fresh catalog snapshot; it supersedes the
		// ceiling captured when the line was first added.
		requested := existing.Quantity + act.Quantity
		if CheckStock(requested, act.Product.Stock) == StockReject {
			return s, SignalStockInsufficient, nil
		}
		lines := cloneLines(s.Lines)
		lines[idx].Quantity = requested
		lines[idx].StockCeiling = act.Product.Stock
		lines[idx].recompute()
		return recomputed(s.withLines(lines)), SignalNone, nil
	}

	if CheckStock(act.Quantity, act.Product.Stock) == StockReject {
		return s, SignalStockInsufficient, nil
	}
	lines := cloneLines(s.Lines)
	lines = append(lines, newLine(act.Product, act.Quantity))
	return recomputed(s.withLines(lines)), SignalNone, nil
}

func applyRemove(s State, act RemoveItem) (State, Signal, error) {
	_, idx := s.LineFor(act.ProductID)
	if idx < 0 {
		return s, SignalNone, nil
	}
	lines := cloneLines(s.Lines)
	lines = append(lines[:idx], lines[idx+1:]...)
	return recomputed(s.withLines(lines)), SignalNone, nil
}

func applySetQuantity(s State, act SetQuantity) (State, Signal, error) {
	if act.Quantity <= 0 {
		return applyRemove(s, RemoveItem{ProductID: act.ProductID})
	}
	existing, idx := s.LineFor(act.ProductID)
	if idx < 0 {
		return s, SignalUnknownLine, nil
	}
	if CheckStock(act.Quantity, existing.StockCeiling) == StockReject {
		return s, SignalStockInsufficient, nil
	}
	lines := cloneLines(s.Lines)
	lines[idx].Quantity = act.Quantity
	lines[idx].recompute()
	return recomputed(s.withLines(lines)), SignalNone, nil
}

func applyItemDiscount(s State, act ApplyItemDiscount) (State, Signal, error) {
	_, idx := s.LineFor(act.ProductID)
	if idx < 0 {
		return s, SignalUnknownLine, nil
	}
	lines := cloneLines(s.Lines)
	lines[idx].ItemDiscountPercent = money.ClampPercent(act.Percent)
	lines[idx].recompute()
	return recomputed(s.withLines(lines)), SignalNone, nil
}

func (s State) withLines(lines []Line) State {
	s.Lines = lines
	return s
}

func recomputed(s State) State {
	s.Totals = ComputeTotals(s.Lines, s.OrderDiscountPercent)
	return s
}

func cloneLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
