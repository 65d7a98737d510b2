package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// KeyValidator checks a presented key against stored admin keys.
// Satisfied by *apikeystore.Store.
type KeyValidator interface {
	Check(ctx context.Context, providedKey string) error
}

// APIKeyAuth returns middleware that validates admin API key authentication.
//
// The middleware checks for an API key in the Authorization header using
// the Bearer scheme: "Authorization: Bearer <api-key>".
//
// A request is authorized when the presented key equals the configured
// static key, or when keys is non-nil and reports the key as a valid
// stored key.
//
// Usage in routes.go:
//
//	r.Group(func(r chi.Router) {
//	    r.Use(apicors.Middleware())
//	    r.Use(auth.APIKeyAuth(appCfg.AdminAPIKey, keyStore, logger))
//	    r.Mount("/api/admin", adminRoutes)
//	})
//
// If the API key is invalid or missing, returns 401 Unauthorized.
// If no static key is configured and keys is nil, all requests are rejected.
func APIKeyAuth(staticKey string, keys KeyValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	if staticKey == "" && keys == nil {
		logger.Warn("admin API key not configured - all admin requests will be rejected")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if staticKey == "" && keys == nil {
				logger.Warn("admin request rejected: API key not configured",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				http.Error(w, "API authentication not configured", http.StatusUnauthorized)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("admin request rejected: missing Authorization header",
					zap.String("path", r.URL.Path),
				)
				http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
				return
			}

			// Expect "Bearer <api-key>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Debug("admin request rejected: invalid Authorization format",
					zap.String("path", r.URL.Path),
				)
				http.Error(w, "Invalid Authorization format (expected: Bearer <api-key>)", http.StatusUnauthorized)
				return
			}

			providedKey := parts[1]
			if staticKey != "" && providedKey == staticKey {
				next.ServeHTTP(w, r)
				return
			}
			if keys != nil {
				if err := keys.Check(r.Context(), providedKey); err == nil {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("admin request rejected: invalid API key",
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)
			http.Error(w, "Invalid API key", http.StatusUnauthorized)
		})
	}
}
