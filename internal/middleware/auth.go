package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/airbean/airbean-api/internal/entities"
	"github.com/airbean/airbean-api/pkg/utils"
)

type TokenVerifier interface {
	VerifyToken(tokenString string) (entities.TokenClaims, error)
}

type claimsKey struct{}

// Auth rejects requests without a valid bearer token and stores the
// verified claims in the request context.
func Auth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				utils.WriteError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			// the original client sent the raw token, newer ones use Bearer
			token := strings.TrimPrefix(header, "Bearer ")

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				utils.WriteError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole guards a subtree behind Auth with an exact role match.
func RequireRole(role string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Role != role {
				utils.WriteError(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ClaimsFromContext(ctx context.Context) (entities.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(entities.TokenClaims)
	return claims, ok
}
