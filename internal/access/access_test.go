package access

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tillworks/pos-terminal/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "tillworks"}
}

func mintToken(t *testing.T, cfg config.JWTConfig, claims OperatorClaims) string {
	t.Helper()
	if claims.Issuer == "" {
		claims.Issuer = cfg.Issuer
	}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestParseOperatorTokenRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	token := mintToken(t, cfg, OperatorClaims{
		OperatorID:   "op-7",
		Capabilities: []Capability{CapApplyDiscount},
	})

	claims, err := ParseOperatorToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.OperatorID != "op-7" {
		t.Fatalf("unexpected operator %q", claims.OperatorID)
	}
	if !claims.CanApplyDiscount() {
		t.Fatal("expected discount capability")
	}
	if claims.CanViewCost() {
		t.Fatal("did not expect cost capability")
	}
}

func TestParseOperatorTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token := mintToken(t, config.JWTConfig{Secret: "other", Issuer: "tillworks"}, OperatorClaims{OperatorID: "op-7"})
	if _, err := ParseOperatorToken(testJWTConfig(), token); err == nil {
		t.Fatal("expected signature validation to fail")
	}
}

func TestParseOperatorTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	claims := OperatorClaims{OperatorID: "op-7"}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token := mintToken(t, cfg, claims)

	if _, err := ParseOperatorToken(cfg, token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseOperatorTokenRequiresOperatorID(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	token := mintToken(t, cfg, OperatorClaims{})
	if _, err := ParseOperatorToken(cfg, token); err == nil {
		t.Fatal("expected missing operator id to fail")
	}
}
