package auth

import (
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type tokenClaims struct {
	issuer    string
	audience  string
	issuedAt  time.Time
	notBefore time.Time
	expiresAt time.Time
}

func buildClaims(t *testing.T, c tokenClaims) jwt.Token {
	t.Helper()
	token, err := jwt.NewBuilder().
		Issuer(c.issuer).
		Audience([]string{c.audience}).
		Subject("member-42").
		IssuedAt(c.issuedAt).
		NotBefore(c.notBefore).
		Expiration(c.expiresAt).
		Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	return token
}

func TestTokenValidatorClaims(t *testing.T) {
	now := time.Now()
	good := tokenClaims{
		issuer:    "storefront-api",
		audience:  "storefront-web",
		issuedAt:  now,
		notBefore: now,
		expiresAt: now.Add(15 * time.Minute),
	}

	cases := []struct {
		name    string
		mutate  func(*tokenClaims)
		alg     jwa.SignatureAlgorithm
		wantErr bool
	}{
		{name: "valid token", mutate: func(*tokenClaims) {}, alg: jwa.HS256},
		{
			name:    "issuer mismatch",
			mutate:  func(c *tokenClaims) { c.issuer = "someone-else" },
			alg:     jwa.HS256,
			wantErr: true,
		},
		{
			name:    "audience mismatch",
			mutate:  func(c *tokenClaims) { c.audience = "mobile-app" },
			alg:     jwa.HS256,
			wantErr: true,
		},
		{
			name: "expired",
			mutate: func(c *tokenClaims) {
				c.issuedAt = now.Add(-2 * time.Hour)
				c.notBefore = now.Add(-2 * time.Hour)
				c.expiresAt = now.Add(-time.Minute)
			},
			alg:     jwa.HS256,
			wantErr: true,
		},
		{
			name: "not yet valid",
			mutate: func(c *tokenClaims) {
				c.notBefore = now.Add(5 * time.Minute)
				c.expiresAt = now.Add(10 * time.Minute)
			},
			alg:     jwa.HS256,
			wantErr: true,
		},
		{
			name:    "algorithm mismatch",
			mutate:  func(*tokenClaims) {},
			alg:     jwa.RS256,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims := good
			tc.mutate(&claims)
			token := buildClaims(t, claims)

			validator := TokenValidator{
				Issuer:    "storefront-api",
				Audience:  "storefront-web",
				ClockSkew: time.Second,
				Algorithm: jwa.HS256,
			}
			err := validator.Validate(token, tc.alg, now)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("validate: %v", err)
			}
		})
	}
}

func TestTokenValidatorSkewTolerance(t *testing.T) {
	now := time.Now()
	// Expired half a second ago; a one-second skew allowance keeps it valid.
	token := buildClaims(t, tokenClaims{
		issuer:    "storefront-api",
		audience:  "storefront-web",
		issuedAt:  now.Add(-time.Minute),
		notBefore: now.Add(-time.Minute),
		expiresAt: now.Add(-500 * time.Millisecond),
	})

	validator := TokenValidator{
		Issuer:    "storefront-api",
		Audience:  "storefront-web",
		ClockSkew: time.Second,
		Algorithm: jwa.HS256,
	}
	if err := validator.Validate(token, jwa.HS256, now); err != nil {
		t.Fatalf("validate within skew: %v", err)
	}
}
