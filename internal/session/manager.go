package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tillworks/pos-terminal/internal/access"
	"github.com/tillworks/pos-terminal/internal/sales"
	pkgerrors "github.com/tillworks/pos-terminal/pkg/errors"
	"github.com/tillworks/pos-terminal/pkg/logger"
	"github.com/tillworks/pos-terminal/pkg/metrics"
)

// Manager creates and tracks checkout sessions. Each session is destroyed or
// reset exactly once per completed or abandoned checkout; nothing is shared
// between sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	till      sales.TillChecker
	submitter sales.Submitter
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
}

// NewManager wires the session manager to its collaborators.
func NewManager(till sales.TillChecker, submitter sales.Submitter, m *metrics.CheckoutMetrics, logg *logger.Logger) (*Manager, error) {
	if till == nil {
		return nil, fmt.Errorf("till checker required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("sales submitter required")
	}
	return &Manager{
		sessions:  map[uuid.UUID]*Session{},
		till:      till,
		submitter: submitter,
		metrics:   m,
		logg:      logg,
	}, nil
}

// Create opens a checkout session for the operator. An open till session is
// required before any checkout may begin.
func (m *Manager) Create(ctx context.Context, claims *access.OperatorClaims) (*Session, error) {
	if claims == nil || claims.OperatorID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator identity required")
	}

	open, err := m.till.HasOpenTill(ctx, claims.OperatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking till session")
	}
	if !open {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no open till session for operator")
	}

	s := newSession(claims.OperatorID, claims, m.submitter, m.metrics, m.logg)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	if m.logg != nil {
		m.logg.Info(m.logg.WithCheckoutSession(ctx, s.ID.String()), "checkout session opened")
	}
	return s, nil
}

// Get returns the session or a not-found error.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checkout session not found")
}

// Destroy drops a session. Abandoning mid-checkout is allowed; the cart state
// dies with the session.
func (m *Manager) Destroy(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
