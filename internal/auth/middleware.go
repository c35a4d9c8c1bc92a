package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sebuszqo/PaymentGateway/internal/permission"
)

// JWTAccessTokenMiddleware authenticates the request from its bearer token.
// The decoded grant is placed in the request context under "username" and
// "permissions". Tokens from a generation older than the store's current one
// were invalidated by sign-out or re-issuance and are rejected.
func (s *service) JWTAccessTokenMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			grant, err := s.jwtManager.ValidateAccessToken(tokenString)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			current, err := s.generations.Current(r.Context(), grant.Username)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if grant.Generation != current {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), "username", grant.Username)
			ctx = context.WithValue(ctx, "permissions", grant.Permissions)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermissions guards a route with one or more alternative permission
// sets. The request passes when the caller's grant fully covers at least one
// set; otherwise the response is 403 with no body.
func (s *service) RequirePermissions(requiredSets ...permission.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			granted, ok := r.Context().Value("permissions").(permission.Permission)
			if !ok {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			if !permission.AnySetSatisfied(granted, requiredSets...) {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
