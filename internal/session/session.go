package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillworks/pos-terminal/internal/access"
	"github.com/tillworks/pos-terminal/internal/cart"
	"github.com/tillworks/pos-terminal/internal/catalog"
	"github.com/tillworks/pos-terminal/internal/checkout"
	"github.com/tillworks/pos-terminal/internal/sales"
	"github.com/tillworks/pos-terminal/internal/selection"
	pkgerrors "github.com/tillworks/pos-terminal/pkg/errors"
	"github.com/tillworks/pos-terminal/pkg/logger"
	"github.com/tillworks/pos-terminal/pkg/metrics"
)

// Session owns exactly one cart, one reconciler and one selection controller
// for the life of a checkout. All mutations serialize through its mutex, so
// every transition is atomic from the caller's point of view.
type Session struct {
	ID         uuid.UUID
	OperatorID string

	mu         sync.Mutex
	state      cart.State
	rec        *checkout.Reconciler
	sel        *selection.Controller
	perms      access.Predicate
	submitter  sales.Submitter
	metrics    *metrics.CheckoutMetrics
	logg       *logger.Logger
	processing bool
}

// Snapshot is the render view of a session.
type Snapshot struct {
	SessionID            uuid.UUID       `json:"session_id"`
	Lines                []cart.Line     `json:"lines"`
	OrderDiscountPercent decimal.Decimal `json:"order_discount_percent"`
	Totals               cart.Totals     `json:"totals"`
	Phase                checkout.Phase  `json:"phase"`
	FocusedIndex         *int            `json:"focused_index,omitempty"`
	Processing           bool            `json:"processing"`
}

func newSession(operatorID string, perms access.Predicate, submitter sales.Submitter, m *metrics.CheckoutMetrics, logg *logger.Logger) *Session {
	return &Session{
		ID:         uuid.New(),
		OperatorID: operatorID,
		state:      cart.Empty(),
		rec:        checkout.NewReconciler(),
		sel:        selection.NewController(),
		perms:      perms,
		submitter:  submitter,
		metrics:    m,
		logg:       logg,
	}
}

// Snapshot returns a consistent render view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:            s.ID,
		Lines:                append([]cart.Line(nil), s.state.Lines...),
		OrderDiscountPercent: s.state.OrderDiscountPercent,
		Totals:               s.state.Totals.Rounded(),
		Phase:                s.rec.Phase(),
		Processing:           s.processing,
	}
	if idx, ok := s.sel.Focused(); ok {
		snap.FocusedIndex = &idx
	}
	return snap
}

// AddProduct merges a catalog product into the cart.
func (s *Session) AddProduct(p catalog.Product, quantity int) (cart.Signal, error) {
	return s.apply(cart.AddItem{Product: toCartProduct(p), Quantity: quantity})
}

// RemoveProduct drops the line for a product.
func (s *Session) RemoveProduct(productID uuid.UUID) (cart.Signal, error) {
	return s.apply(cart.RemoveItem{ProductID: productID})
}

// SetQuantity replaces a line's quantity; zero removes the line.
func (s *Session) SetQuantity(productID uuid.UUID, quantity int) (cart.Signal, error) {
	return s.apply(cart.SetQuantity{ProductID: productID, Quantity: quantity})
}

// ApplyItemDiscount sets a per-line discount. Requires the discount capability.
func (s *Session) ApplyItemDiscount(productID uuid.UUID, percent decimal.Decimal) (cart.Signal, error) {
	if !s.perms.CanApplyDiscount() {
		return cart.SignalNone, pkgerrors.New(pkgerrors.CodeForbidden, "operator may not apply discounts")
	}
	return s.apply(cart.ApplyItemDiscount{ProductID: productID, Percent: percent})
}

// ApplyOrderDiscount sets the order-level discount. Requires the discount capability.
func (s *Session) ApplyOrderDiscount(percent decimal.Decimal) (cart.Signal, error) {
	if !s.perms.CanApplyDiscount() {
		return cart.SignalNone, pkgerrors.New(pkgerrors.CodeForbidden, "operator may not apply discounts")
	}
	return s.apply(cart.ApplyOrderDiscount{Percent: percent})
}

// Clear empties the cart and releases focus.
func (s *Session) Clear() (cart.Signal, error) {
	return s.apply(cart.Clear{})
}

func (s *Session) apply(a cart.Action) (cart.Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(a)
}

// applyLocked runs one cart transition. Callers hold s.mu.
func (s *Session) applyLocked(a cart.Action) (cart.Signal, error) {
	if s.rec.Phase() != checkout.PhaseIdle {
		return cart.SignalNone, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is frozen while a checkout is in progress")
	}

	next, sig, err := cart.Apply(s.state, a)
	if err != nil {
		return cart.SignalNone, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart transition")
	}
	outcome := "applied"
	if sig != cart.SignalNone {
		outcome = "rejected"
	}
	s.metrics.IncTransition(cart.Name(a), outcome)

	s.state = next
	s.sel.Sync(len(s.state.Lines))
	return sig, nil
}

// BeginCheckout freezes totals and requires a tender. The cart stays intact.
func (s *Session) BeginCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Begin(s.state)
}

// CancelCheckout abandons the tender flow without touching the cart.
func (s *Session) CancelCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "submission in flight")
	}
	s.rec.Cancel()
	return nil
}

// Tender validates the cash amount and returns the submission payload.
func (s *Session) Tender(amount decimal.Decimal, method checkout.PaymentMethod) (checkout.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Settle(amount, method)
}

// Submit posts the settled payload to the sales service. At most one
// submission is outstanding per session. On success the cart is cleared and
// the reconciler returns to idle; on failure the cart is untouched and the
// reconciler reopens to awaiting-tender for retry.
func (s *Session) Submit(ctx context.Context, payload checkout.Payload) (*sales.Receipt, error) {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "submission in flight")
	}
	if s.rec.Phase() != checkout.PhaseSettled {
		s.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no settled checkout to submit")
	}
	s.processing = true
	s.mu.Unlock()

	start := time.Now()
	receipt, err := s.submitter.Submit(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = false

	if err != nil {
		s.metrics.ObserveSubmission("failure", time.Since(start))
		if s.logg != nil {
			s.logg.Error(ctx, "sale submission failed", err)
		}
		if reopenErr := s.rec.Reopen(); reopenErr != nil && s.logg != nil {
			s.logg.Warn(ctx, "could not reopen tender after failed submission")
		}
		return nil, err
	}

	s.metrics.ObserveSubmission("success", time.Since(start))
	s.state = cart.Empty()
	s.sel.Release()
	s.rec.Cancel()
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "ticket_id", receipt.TicketID), "sale submitted")
	}
	return receipt, nil
}

// SubmitSettled submits the payload produced by the last successful Tender.
func (s *Session) SubmitSettled(ctx context.Context) (*sales.Receipt, error) {
	s.mu.Lock()
	payload, err := s.rec.SettledPayload()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.Submit(ctx, payload)
}

func toCartProduct(p catalog.Product) cart.Product {
	cp := cart.Product{
		ID:        p.ID,
		Name:      p.Name,
		SalePrice: p.SalePrice,
		Stock:     p.Stock,
	}
	if p.Tax != nil {
		cp.Tax = &cart.TaxRule{Name: p.Tax.Name, Percent: p.Tax.Percent}
	}
	return cp
}
