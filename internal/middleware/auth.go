package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sehyukim/minton-calendar/internal/auth"
	"github.com/sehyukim/minton-calendar/internal/httputil"
)

type ContextKey string

const ClaimsKey ContextKey = "adminClaims"

// RequireAdmin rejects any request lacking a valid, unexpired bearer token.
// The response does not say whether the token was missing, malformed or
// expired.
func RequireAdmin(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				httputil.AdminLoginRequired(w)
				return
			}

			claims, err := authService.ValidateToken(token)
			if err != nil {
				httputil.AdminLoginRequired(w)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	val := ctx.Value(ClaimsKey)
	if val == nil {
		return nil, false
	}

	claims, ok := val.(*auth.Claims)
	return claims, ok
}
