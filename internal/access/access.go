package access

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tillworks/pos-terminal/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// Capability names a permission the auth service grants an operator.
type Capability string

const (
	CapApplyDiscount Capability = "apply_discount"
	CapViewCost      Capability = "view_cost"
	CapAdjustStock   Capability = "adjust_stock"
)

// OperatorClaims is the typed JWT the auth service issues to a terminal
// operator. Capabilities gate which cart transitions the shell may invoke;
// the cart engine itself stays permission-agnostic.
type OperatorClaims struct {
	OperatorID   string       `json:"operator_id"`
	Name         string       `json:"name,omitempty"`
	Capabilities []Capability `json:"capabilities"`
	jwt.RegisteredClaims
}

// Predicate is the capability check injected into permission-gated layers.
type Predicate interface {
	CanApplyDiscount() bool
	CanViewCost() bool
	CanAdjustStock() bool
}

// Has reports whether the claims carry a capability.
func (c *OperatorClaims) Has(cap Capability) bool {
	for _, got := range c.Capabilities {
		if got == cap {
			return true
		}
	}
	return false
}

func (c *OperatorClaims) CanApplyDiscount() bool { return c.Has(CapApplyDiscount) }
func (c *OperatorClaims) CanViewCost() bool      { return c.Has(CapViewCost) }
func (c *OperatorClaims) CanAdjustStock() bool   { return c.Has(CapAdjustStock) }

// ParseOperatorToken validates the JWT string and returns typed claims.
func ParseOperatorToken(cfg config.JWTConfig, tokenString string) (*OperatorClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	claims := &OperatorClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing operator token: %w", err)
	}
	if claims.OperatorID == "" {
		return nil, fmt.Errorf("operator token missing operator id")
	}
	return claims, nil
}
