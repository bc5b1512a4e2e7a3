package middleware

import (
	"context"

	"github.com/tillworks/pos-terminal/internal/access"
)

type contextKey string

const ctxOperator contextKey = "operator_claims"

// OperatorFromContext returns the claims seeded by the Auth middleware, or nil.
func OperatorFromContext(ctx context.Context) *access.OperatorClaims {
	if ctx == nil {
		return nil
	}
	if claims, ok := ctx.Value(ctxOperator).(*access.OperatorClaims); ok {
		return claims
	}
	return nil
}

// WithOperator injects operator claims into the context.
func WithOperator(ctx context.Context, claims *access.OperatorClaims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxOperator, claims)
}
