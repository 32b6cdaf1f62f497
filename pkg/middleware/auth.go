package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	jwtutil "github.com/Dias221467/Wallpaper_Hub/pkg/jwt"
	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token claims in the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(tokenStr) == "" {
				writeUnauthorized(w, "Not authorized, no token")
				return
			}

			claims, err := jwtutil.ValidateToken(strings.TrimSpace(tokenStr), secret)
			if err != nil {
				logger.Log.WithField("path", r.URL.Path).Warn("Rejected invalid token")
				writeUnauthorized(w, "Not authorized, token failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), claims)))
		})
	}
}

// ContextWithUser returns a copy of ctx carrying claims.
func ContextWithUser(ctx context.Context, claims *jwtutil.Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

// GetUserFromContext returns the authenticated user's claims, or nil.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, _ := ctx.Value(userContextKey).(*jwtutil.Claims)
	return claims
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
