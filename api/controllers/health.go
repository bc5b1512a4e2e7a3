package controllers

import (
	"net/http"

	"github.com/tillworks/pos-terminal/api/responses"
	"github.com/tillworks/pos-terminal/pkg/config"
	pkgerrors "github.com/tillworks/pos-terminal/pkg/errors"
	"github.com/tillworks/pos-terminal/pkg/logger"
	"github.com/tillworks/pos-terminal/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tillworks-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. The snapshot cache is the only local
// dependency; the catalog and sales services are checked lazily per request.
func HealthReady(cfg *config.Config, logg *logger.Logger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tillworks-Env", cfg.App.Env)

		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "snapshot cache unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
