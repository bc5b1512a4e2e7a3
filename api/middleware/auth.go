package middleware

import (
	"net/http"
	"strings"

	"github.com/tillworks/pos-terminal/api/responses"
	"github.com/tillworks/pos-terminal/internal/access"
	"github.com/tillworks/pos-terminal/pkg/config"
	pkgerrors "github.com/tillworks/pos-terminal/pkg/errors"
	"github.com/tillworks/pos-terminal/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// operator claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := access.ParseOperatorToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithOperator(r.Context(), claims)
			if logg != nil {
				ctx = logg.WithOperatorID(ctx, claims.OperatorID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
