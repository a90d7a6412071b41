// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"inkwell/internal/authgate"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// IdentityKey is the context key for the authenticated identity.
	IdentityKey contextKey = "identity"
)

// RequireAuth verifies the request's bearer token against the identity
// provider before any mutating handler runs. Read-only routes must not be
// wrapped with it. A nil gate (provider not configured) rejects everything:
// mutations without a verifiable identity are never allowed through.
func RequireAuth(gate *authgate.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate == nil {
				writeAuthError(w, "identity provider is not configured", http.StatusServiceUnavailable)
				return
			}

			identity, err := gate.Authorize(r.Context(), bearerToken(r))
			if err != nil {
				writeAuthError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromCtx extracts the authenticated identity from the request
// context. Returns nil outside RequireAuth-wrapped routes.
func IdentityFromCtx(ctx context.Context) *authgate.Identity {
	identity, _ := ctx.Value(IdentityKey).(*authgate.Identity)
	return identity
}

// bearerToken extracts the token from the Authorization header.
// Returns "" if the header is absent or not a Bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// writeAuthError writes a JSON error response for auth failures.
func writeAuthError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
