package terminal

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tillworks/pos-terminal/api/middleware"
	"github.com/tillworks/pos-terminal/api/responses"
	"github.com/tillworks/pos-terminal/internal/access"
	"github.com/tillworks/pos-terminal/internal/catalog"
	pkgerrors "github.com/tillworks/pos-terminal/pkg/errors"
	"github.com/tillworks/pos-terminal/pkg/logger"
)

// Refresher is the optional cache-bypass surface of the catalog client.
type Refresher interface {
	Refresh(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

// SearchProducts looks up catalog products by name fragment.
func SearchProducts(cat catalog.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := strings.TrimSpace(r.URL.Query().Get("q"))
		if term == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "query parameter q is required"))
			return
		}

		found, err := cat.Search(r.Context(), term)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claims := middleware.OperatorFromContext(r.Context())
		out := make([]catalog.Product, len(found))
		for i, p := range found {
			out[i] = redactCost(p, claims)
		}
		responses.WriteSuccess(w, out)
	}
}

// ProductByBarcode resolves a single product from a scanned barcode.
func ProductByBarcode(cat catalog.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(chi.URLParam(r, "barcode"))
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required"))
			return
		}

		product, err := cat.ByBarcode(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, redactCost(*product, middleware.OperatorFromContext(r.Context())))
	}
}

// RefreshProduct re-fetches a product past the snapshot cache, for when the
// operator suspects the advisory stock ceiling has gone stale.
func RefreshProduct(cat Refresher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := cat.Refresh(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, redactCost(*product, middleware.OperatorFromContext(r.Context())))
	}
}

// redactCost strips the cost price for operators without the view capability.
func redactCost(p catalog.Product, claims *access.OperatorClaims) catalog.Product {
	if claims != nil && claims.CanViewCost() {
		return p
	}
	p.CostPrice = nil
	return p
}
