package middleware

import (
	"context"
	"net/http"

	"github.com/nhahub/NHA-046/internal/httpx"
	"github.com/nhahub/NHA-046/internal/token"
)

type contextKey string

const claimsKey contextKey = "claims"

// RequireAuth verifies the bearer token on protected routes and stores the
// verified claims in the request context. It runs after the rate-limit gate
// and before any inference work.
func RequireAuth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpx.WriteError(w, httpx.Auth("No authorization token provided"))
				return
			}

			claims, err := tokens.Verify(token.FromAuthHeader(header))
			if err != nil {
				httpx.WriteError(w, httpx.Auth("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom returns the verified claims stored by RequireAuth, or nil on an
// unauthenticated request.
func ClaimsFrom(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(claimsKey).(*token.Claims)
	return claims
}
