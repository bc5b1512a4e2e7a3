package terminal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tillworks/pos-terminal/api/middleware"
	"github.com/tillworks/pos-terminal/api/responses"
	"github.com/tillworks/pos-terminal/internal/session"
	pkgerrors "github.com/tillworks/pos-terminal/pkg/errors"
	"github.com/tillworks/pos-terminal/pkg/logger"
)

// CreateSession opens a checkout session for the authenticated operator.
// Creation fails when the operator has no open till session.
func CreateSession(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.OperatorFromContext(r.Context())
		if claims == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator context missing"))
			return
		}

		s, err := mgr.Create(r.Context(), claims)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, s.Snapshot())
	}
}

// GetSession returns the render view of a session.
func GetSession(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, s.Snapshot())
	}
}

// DestroySession drops a session. Any in-memory cart state is discarded.
func DestroySession(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mgr.Destroy(id)
		responses.WriteSuccess(w, map[string]string{"status": "destroyed"})
	}
}

func sessionIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "sessionID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id")
	}
	return id, nil
}

func sessionFromRequest(mgr *session.Manager, r *http.Request) (*session.Session, error) {
	id, err := sessionIDFromRequest(r)
	if err != nil {
		return nil, err
	}
	return mgr.Get(id)
}
