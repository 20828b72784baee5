package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/payportal/payportal/internal/token"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenChecker reports whether a token ID has been revoked.
type TokenChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RequireAuth validates the bearer token, rejects revoked tokens and stores
// the claims in the request context. When the revocation check itself fails
// the token is accepted and the failure is logged, so a store outage degrades
// logout revocation visibly instead of locking every caller out.
func RequireAuth(jwtSecret string, checker TokenChecker, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing authorization header", "auth_required")
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "invalid authorization scheme", "auth_invalid_scheme")
				return
			}

			claims, err := token.Parse(strings.TrimPrefix(authHeader, "Bearer "), jwtSecret)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid token", "auth_invalid")
				return
			}

			if checker != nil {
				revoked, err := checker.IsRevoked(r.Context(), claims.ID)
				switch {
				case err != nil:
					logger.Error().Err(err).Str("token_id", claims.ID).Msg("token revocation check failed")
				case revoked:
					writeAuthError(w, http.StatusUnauthorized, "token revoked", "auth_revoked")
					return
				}
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated requests whose role claim is not listed.
// It must run after RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "missing authorization", "auth_required")
				return
			}
			if !allowed[claims.Role] {
				writeAuthError(w, http.StatusForbidden, "insufficient role", "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok
}

// WithClaims stores claims in the context. Exposed for handler tests.
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func writeAuthError(w http.ResponseWriter, status int, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"msg":  msg,
		"code": code,
	})
}
