// Package apicors provides CORS middleware for the JSON API.
//
// The public site and the admin dashboard are served from other origins
// (Vite dev server, static hosting), and authentication uses Bearer API
// keys rather than cookies, so there are no credentials to protect:
// origins can be "*" and AllowCredentials stays false.
package apicors

import (
	"net/http"
)

// Middleware returns CORS middleware suitable for API key authenticated endpoints.
//
// This middleware:
//   - Allows any origin (Access-Control-Allow-Origin: *)
//   - Does not allow credentials (no cookies needed with API key auth)
//   - Allows common API methods and headers
//   - Handles preflight OPTIONS requests
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MiddlewareWithOrigins returns CORS middleware that only allows specific
// origins. Used when the deployment locks the API to its own frontends.
func MiddlewareWithOrigins(allowedOrigins ...string) func(http.Handler) http.Handler {
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originSet[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" {
				if _, allowed := originSet[origin]; allowed {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
				}
				// Origin not allowed: no CORS headers, the browser blocks.
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
