package auth

import (
	"testing"
	"time"

	"github.com/likelemba/likelemba/internal/config"
	"github.com/likelemba/likelemba/internal/identity"
)

func newTestService(ttl time.Duration) *Service {
	return NewService(config.Config{JWTSecret: "test-secret", AccessTokenTTL: ttl})
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestService(30 * time.Minute)

	token, err := svc.Issue("+242068001234", identity.RoleTreasurer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %q", token.TokenType)
	}
	if token.ExpiresIn != int64((30 * time.Minute).Seconds()) {
		t.Fatalf("unexpected expires_in %d", token.ExpiresIn)
	}

	claims, err := svc.Verify(token.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "+242068001234" {
		t.Fatalf("expected phone subject, got %q", claims.Subject)
	}
	if claims.Role != identity.RoleTreasurer {
		t.Fatalf("expected treasurer role claim, got %q", claims.Role)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.Issue("+242068001234", identity.RoleMember)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(token.AccessToken); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := newTestService(30 * time.Minute)
	verifier := NewService(config.Config{JWTSecret: "other-secret", AccessTokenTTL: 30 * time.Minute})

	token, err := issuer.Issue("+242068001234", identity.RoleMember)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token.AccessToken); err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestService(30 * time.Minute)
	if _, err := svc.Verify("not-a-token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
