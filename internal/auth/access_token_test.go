package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

func newTokenService(t *testing.T, now time.Time) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Queries:         newFakeQueries(),
		Secret:          "storefront-signing-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		ResetTokenTTL:   time.Hour,
		Issuer:          "storefront-api",
		Audience:        "storefront-web",
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.WithNow(func() time.Time { return now })
	return svc
}

func TestAccessTokenRoundTrip(t *testing.T) {
	now := time.Now()
	svc := newTokenService(t, now)

	token, expiresAt, err := svc.signAccessToken("member-42")
	if err != nil {
		t.Fatalf("sign access token: %v", err)
	}
	if !expiresAt.After(now) {
		t.Fatalf("expected expiry after now, got %v", expiresAt)
	}
	subject, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if subject != "member-42" {
		t.Fatalf("subject = %q, want member-42", subject)
	}
}

func TestAccessTokenTamperedSignature(t *testing.T) {
	now := time.Now()
	svc := newTokenService(t, now)

	token, _, err := svc.signAccessToken("member-42")
	if err != nil {
		t.Fatalf("sign access token: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}
	forged := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := svc.ParseAccessToken(forged); err == nil {
		t.Fatal("expected signature verification failure")
	}
}

func TestAccessTokenWrongSigningAlgorithm(t *testing.T) {
	now := time.Now()
	svc := newTokenService(t, now)

	// Same secret, but HS384 instead of the configured algorithm.
	built, err := jwt.NewBuilder().
		Subject("member-42").
		Issuer(svc.issuer).
		Audience([]string{svc.audience}).
		IssuedAt(now).
		NotBefore(now.Add(-svc.clockSkew)).
		Expiration(now.Add(svc.accessTTL)).
		Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	signed, err := jwt.Sign(built, jwt.WithKey(jwa.HS384, svc.secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.ParseAccessToken(string(signed)); err == nil {
		t.Fatal("expected algorithm mismatch error")
	}
}
