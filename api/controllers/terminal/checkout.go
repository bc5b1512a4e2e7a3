package terminal

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tillworks/pos-terminal/api/responses"
	"github.com/tillworks/pos-terminal/api/validators"
	"github.com/tillworks/pos-terminal/internal/checkout"
	"github.com/tillworks/pos-terminal/internal/sales"
	"github.com/tillworks/pos-terminal/internal/session"
	"github.com/tillworks/pos-terminal/pkg/logger"
)

// BeginCheckout freezes the cart totals and opens the tender flow.
func BeginCheckout(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := s.BeginCheckout(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, s.Snapshot())
	}
}

// CancelCheckout abandons the tender flow. The cart is untouched.
func CancelCheckout(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := s.CancelCheckout(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, s.Snapshot())
	}
}

type tenderRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Method string          `json:"method" validate:"required,oneof=cash"`
}

type tenderResponse struct {
	Payload  checkout.Payload `json:"payload"`
	Snapshot session.Snapshot `json:"snapshot"`
}

// Tender validates the cash amount against the frozen total. A short tender
// keeps the checkout open so the operator can correct the amount.
func Tender(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload tenderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settled, err := s.Tender(payload.Amount, checkout.PaymentMethod(payload.Method))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tenderResponse{Payload: settled, Snapshot: s.Snapshot()})
	}
}

type submitResponse struct {
	Receipt  sales.Receipt    `json:"receipt"`
	Snapshot session.Snapshot `json:"snapshot"`
}

// SubmitSale posts the settled payload to the sales service. On success the
// cart is cleared; on failure it is kept intact and the tender reopens.
func SubmitSale(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := s.SubmitSettled(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, submitResponse{Receipt: *receipt, Snapshot: s.Snapshot()})
	}
}
