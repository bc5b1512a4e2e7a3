package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tillworks/pos-terminal/api/controllers"
	terminalcontrollers "github.com/tillworks/pos-terminal/api/controllers/terminal"
	"github.com/tillworks/pos-terminal/api/middleware"
	"github.com/tillworks/pos-terminal/internal/catalog"
	"github.com/tillworks/pos-terminal/internal/session"
	"github.com/tillworks/pos-terminal/pkg/config"
	"github.com/tillworks/pos-terminal/pkg/logger"
	"github.com/tillworks/pos-terminal/pkg/redis"
)

// NewRouter wires the HTTP surface of the terminal.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	cache *redis.Client,
	catalogClient catalog.Client,
	refresher terminalcontrollers.Refresher,
	sessions *session.Manager,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, cache))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/search", terminalcontrollers.SearchProducts(catalogClient, logg))
			r.Get("/barcode/{barcode}", terminalcontrollers.ProductByBarcode(catalogClient, logg))
			if refresher != nil {
				r.Post("/{productID}/refresh", terminalcontrollers.RefreshProduct(refresher, logg))
			}
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", terminalcontrollers.CreateSession(sessions, logg))

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", terminalcontrollers.GetSession(sessions, logg))
				r.Delete("/", terminalcontrollers.DestroySession(sessions, logg))

				r.Post("/items", terminalcontrollers.AddItem(sessions, catalogClient, logg))
				r.Post("/items/quantity", terminalcontrollers.SetQuantity(sessions, logg))
				r.Post("/items/remove", terminalcontrollers.RemoveItem(sessions, logg))
				r.Post("/items/discount", terminalcontrollers.ItemDiscount(sessions, logg))
				r.Post("/discounts/order", terminalcontrollers.OrderDiscount(sessions, logg))
				r.Post("/clear", terminalcontrollers.ClearCart(sessions, logg))
				r.Post("/commands", terminalcontrollers.DispatchCommand(sessions, logg))

				r.Route("/checkout", func(r chi.Router) {
					r.Post("/", terminalcontrollers.BeginCheckout(sessions, logg))
					r.Post("/tender", terminalcontrollers.Tender(sessions, logg))
					r.Post("/submit", terminalcontrollers.SubmitSale(sessions, logg))
					r.Post("/cancel", terminalcontrollers.CancelCheckout(sessions, logg))
				})
			})
		})
	})

	return r
}
