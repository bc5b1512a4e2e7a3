package terminal

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillworks/pos-terminal/api/responses"
	"github.com/tillworks/pos-terminal/api/validators"
	"github.com/tillworks/pos-terminal/internal/cart"
	"github.com/tillworks/pos-terminal/internal/catalog"
	"github.com/tillworks/pos-terminal/internal/session"
	pkgerrors "github.com/tillworks/pos-terminal/pkg/errors"
	"github.com/tillworks/pos-terminal/pkg/logger"
)

// cartActionResponse pairs the transition outcome with the fresh render view
// so the screen never needs a follow-up fetch.
type cartActionResponse struct {
	Signal   cart.Signal      `json:"signal,omitempty"`
	Snapshot session.Snapshot `json:"snapshot"`
}

type addItemRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
	Barcode   *string    `json:"barcode"`
	Quantity  int        `json:"quantity" validate:"required,min=1"`
}

// AddItem resolves a catalog product by id or barcode and merges it into the
// cart. A barcode miss is a not-found, never a crash of the session.
func AddItem(mgr *session.Manager, cat catalog.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var product *catalog.Product
		switch {
		case payload.ProductID != nil:
			product, err = cat.Product(r.Context(), *payload.ProductID)
		case payload.Barcode != nil && *payload.Barcode != "":
			product, err = cat.ByBarcode(r.Context(), *payload.Barcode)
		default:
			err = pkgerrors.New(pkgerrors.CodeValidation, "product_id or barcode is required")
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sig, err := s.AddProduct(*product, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartActionResponse{Signal: sig, Snapshot: s.Snapshot()})
	}
}

type setQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  *int      `json:"quantity" validate:"required,min=0"`
}

// SetQuantity replaces a line's quantity. Zero removes the line.
func SetQuantity(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sig, err := s.SetQuantity(payload.ProductID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartActionResponse{Signal: sig, Snapshot: s.Snapshot()})
	}
}

type removeItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// RemoveItem drops a line from the cart.
func RemoveItem(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload removeItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sig, err := s.RemoveProduct(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartActionResponse{Signal: sig, Snapshot: s.Snapshot()})
	}
}

type itemDiscountRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Percent   decimal.Decimal `json:"percent"`
}

// ItemDiscount sets a per-line discount percent. The percent is clamped to
// [0, 100] downstream, so out-of-range input is not an error.
func ItemDiscount(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload itemDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sig, err := s.ApplyItemDiscount(payload.ProductID, payload.Percent)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartActionResponse{Signal: sig, Snapshot: s.Snapshot()})
	}
}

type orderDiscountRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

// OrderDiscount sets the order-level discount percent.
func OrderDiscount(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sig, err := s.ApplyOrderDiscount(payload.Percent)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartActionResponse{Signal: sig, Snapshot: s.Snapshot()})
	}
}

// ClearCart empties the cart and releases the line focus.
func ClearCart(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sig, err := s.Clear()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartActionResponse{Signal: sig, Snapshot: s.Snapshot()})
	}
}

type dispatchRequest struct {
	Command string `json:"command" validate:"required,oneof=focus_next focus_prev release_focus increment decrement remove"`
	Confirm bool   `json:"confirm"`
}

type dispatchResponse struct {
	Outcome  session.Outcome  `json:"outcome"`
	Snapshot session.Snapshot `json:"snapshot"`
}

// DispatchCommand routes a UI command (translated from a key event by the
// shell) through the session's selection controller and cart.
func DispatchCommand(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload dispatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome, err := s.Dispatch(session.Command(payload.Command), payload.Confirm)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dispatchResponse{Outcome: outcome, Snapshot: s.Snapshot()})
	}
}
