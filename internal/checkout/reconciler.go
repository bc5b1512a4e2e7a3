package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/tillworks/pos-terminal/internal/cart"
	pkgerrors "github.com/tillworks/pos-terminal/pkg/errors"
	"github.com/tillworks/pos-terminal/pkg/money"
)

// Phase is the reconciler's position in the tender flow.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAwaitingTender Phase = "awaiting_tender"
	PhaseSettled        Phase = "settled"
)

// Reconciler walks a checkout from frozen totals through tender validation to
// the submission payload. It never touches the cart itself: clearing after a
// successful submission is the caller's decision, so a failed submission
// leaves the cart intact for retry.
type Reconciler struct {
	phase   Phase
	lines   []cart.Line
	totals  cart.Totals
	change  decimal.Decimal
	payload Payload
}

func NewReconciler() *Reconciler {
	return &Reconciler{phase: PhaseIdle}
}

func (r *Reconciler) Phase() Phase {
	return r.phase
}

// FrozenTotals returns the totals captured at Begin, at currency precision.
func (r *Reconciler) FrozenTotals() cart.Totals {
	return r.totals
}

// Begin freezes the cart's lines and totals and moves to AwaitingTender.
// It requires at least one line and a positive grand total.
func (r *Reconciler) Begin(state cart.State) error {
	if r.phase != PhaseIdle {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already in progress")
	}
	if state.IsEmpty() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot check out an empty cart")
	}
	totals := state.Totals.Rounded()
	if !totals.GrandTotal.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot check out a zero total")
	}

	r.lines = make([]cart.Line, len(state.Lines))
	copy(r.lines, state.Lines)
	r.totals = totals
	r.change = decimal.Zero
	r.phase = PhaseAwaitingTender
	return nil
}

// Settle validates the tender against the frozen total and produces the
// submission payload. An insufficient tender leaves the reconciler in
// AwaitingTender so the operator can correct the amount.
func (r *Reconciler) Settle(tendered decimal.Decimal, method PaymentMethod) (Payload, error) {
	if r.phase != PhaseAwaitingTender {
		return Payload{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no tender awaited")
	}
	if !method.IsValid() {
		return Payload{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported payment method").WithDetails(map[string]any{"method": string(method)})
	}
	tendered = money.RoundCurrency(tendered)
	if tendered.LessThan(r.totals.GrandTotal) {
		return Payload{}, pkgerrors.New(pkgerrors.CodeTenderShort, "tendered amount below total").WithDetails(map[string]any{
			"tendered":    tendered.StringFixed(2),
			"grand_total": r.totals.GrandTotal.StringFixed(2),
		})
	}

	r.change = money.FloorZero(tendered.Sub(r.totals.GrandTotal))
	r.phase = PhaseSettled

	lines := make([]PayloadLine, 0, len(r.lines))
	for _, l := range r.lines {
		lines = append(lines, PayloadLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: money.RoundCurrency(l.UnitPriceEffective),
		})
	}
	r.payload = Payload{
		Lines:               lines,
		PaymentMethod:       method,
		Subtotal:            r.totals.Subtotal,
		OrderDiscountAmount: r.totals.OrderDiscountAmount,
		TaxTotal:            r.totals.TaxTotal,
		GrandTotal:          r.totals.GrandTotal,
		TenderedAmount:      tendered,
		ChangeDue:           r.change,
	}
	return r.payload, nil
}

// SettledPayload returns the payload produced by the last Settle. It is only
// available while the checkout is settled.
func (r *Reconciler) SettledPayload() (Payload, error) {
	if r.phase != PhaseSettled {
		return Payload{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no settled checkout")
	}
	return r.payload, nil
}

// ChangeDue reports the change computed at settlement.
func (r *Reconciler) ChangeDue() decimal.Decimal {
	return r.change
}

// Cancel abandons the tender and returns to Idle without touching the cart.
func (r *Reconciler) Cancel() {
	r.phase = PhaseIdle
	r.lines = nil
	r.totals = cart.Totals{}
	r.change = decimal.Zero
	r.payload = Payload{}
}

// Reopen drops a settled checkout back to AwaitingTender after a failed
// submission, keeping the frozen totals so the operator can retry.
func (r *Reconciler) Reopen() error {
	if r.phase != PhaseSettled {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "nothing to reopen")
	}
	r.phase = PhaseAwaitingTender
	r.change = decimal.Zero
	return nil
}
