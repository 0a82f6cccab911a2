// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"catalogweb/internal/auth"
	"catalogweb/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// IdentityKey is the context key for the authenticated admin.
	IdentityKey contextKey = "identity"

	// bearerKey marks requests authenticated with an Authorization header.
	bearerKey contextKey = "bearer"
)

// TokenVerifier validates admin tokens. auth.Manager satisfies it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Identity, error)
}

// TokenFromRequest returns the admin token from the Authorization header
// or, failing that, the session cookie. The second result is true when the
// token came from the header.
func TokenFromRequest(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token), true
		}
		return "", true
	}
	if c, err := r.Cookie(session.CookieName); err == nil {
		return c.Value, false
	}
	return "", false
}

// LoadIdentity verifies the admin token, if any, and stores the identity
// in the request context. Downstream handlers can access it via
// IdentityFromCtx(). This middleware does NOT enforce authentication.
func LoadIdentity(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, bearer := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := v.Verify(r.Context(), token)
			if err != nil {
				if !errors.Is(err, auth.ErrInvalidToken) {
					slog.Error("verify admin token failed", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, id)
			ctx = context.WithValue(ctx, bearerKey, bearer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests without a verified admin identity with
// 401. Must be applied after LoadIdentity in the middleware chain.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromCtx(r.Context()) == nil {
			fail(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromCtx extracts the admin identity from the request context.
// Returns nil if the request is not authenticated.
func IdentityFromCtx(ctx context.Context) *auth.Identity {
	id, _ := ctx.Value(IdentityKey).(*auth.Identity)
	return id
}

// bearerAuthenticated reports whether the identity in ctx was proven with
// an Authorization header rather than the cookie.
func bearerAuthenticated(ctx context.Context) bool {
	b, _ := ctx.Value(bearerKey).(bool)
	return b
}
