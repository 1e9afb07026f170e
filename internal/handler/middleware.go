package handler

import (
	"context"
	"net/http"
	"strings"

	"marksapi/internal/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFrom returns the authenticated staff claims stored by RequireAuth.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// RequireAuth checks the Bearer token and, when role is non-empty, the staff
// role. Valid claims are placed on the request context.
func RequireAuth(tokens *auth.TokenManager, role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Missing token")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := tokens.Parse(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		if role != "" && claims.Role != role {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	}
}
