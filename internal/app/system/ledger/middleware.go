// internal/app/system/ledger/middleware.go
package ledger

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	ledgerstore "github.com/foliostack/folio/internal/app/store/ledger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ctxKey is the context key type for ledger data.
type ctxKey int

const ctxKeyEntry ctxKey = iota

// Config holds configuration for the ledger middleware.
type Config struct {
	// Store is the ledger store for persisting entries.
	Store *ledgerstore.Store

	// Logger for logging persistence failures.
	Logger *zap.Logger

	// MaxBodyPreview is the maximum number of characters to capture from
	// the request body. Set to 0 to disable body preview capture.
	MaxBodyPreview int

	// ExcludePaths is a list of path prefixes to exclude from logging.
	// The SSE stream must be excluded; its requests never complete normally.
	ExcludePaths []string

	// OnlyErrors records only requests that ended with status >= 400.
	OnlyErrors bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(store *ledgerstore.Store, logger *zap.Logger) Config {
	return Config{
		Store:          store,
		Logger:         logger,
		MaxBodyPreview: 500,
		ExcludePaths: []string{
			"/health",
			"/livez",
			"/readyz",
			"/api/events",
			"/uploads",
			"/favicon.ico",
		},
		OnlyErrors: true,
	}
}

// Middleware returns HTTP middleware that records requests to the ledger.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			for _, prefix := range cfg.ExcludePaths {
				if strings.HasPrefix(path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			startTime := time.Now()

			var bodyPreview string
			var bodySize int64
			if cfg.MaxBodyPreview > 0 && r.Body != nil && r.ContentLength > 0 {
				body, err := io.ReadAll(r.Body)
				if err == nil {
					bodySize = int64(len(body))
					preview := string(body)
					if len(preview) > cfg.MaxBodyPreview {
						preview = preview[:cfg.MaxBodyPreview] + "..."
					}
					bodyPreview = preview
					// Restore body for the handler
					r.Body = io.NopCloser(bytes.NewReader(body))
				}
			}

			actorType := "anonymous"
			if r.Header.Get("Authorization") != "" {
				// Admin routes reject bad keys before reaching handlers,
				// so a surviving Authorization header means an admin call.
				actorType = "admin"
			}

			entry := &ledgerstore.Entry{
				RequestID:          uuid.New().String(),
				Method:             r.Method,
				Path:               path,
				Query:              r.URL.RawQuery,
				RemoteIP:           extractIP(r),
				Section:            sectionFromPath(path),
				ActorType:          actorType,
				RequestBodySize:    bodySize,
				RequestBodyPreview: bodyPreview,
				StartedAt:          startTime,
			}

			ctx := context.WithValue(r.Context(), ctxKeyEntry, entry)
			r = r.WithContext(ctx)

			wrapped := &responseWrapper{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			endTime := time.Now()
			entry.StatusCode = wrapped.statusCode
			entry.ResponseSize = wrapped.bytesWritten
			entry.CompletedAt = endTime
			entry.DurationMs = float64(endTime.Sub(startTime).Microseconds()) / 1000.0

			if wrapped.statusCode >= 400 && entry.ErrorClass == "" {
				switch {
				case wrapped.statusCode == 400:
					entry.ErrorClass = "validation"
				case wrapped.statusCode == 401:
					entry.ErrorClass = "auth"
				case wrapped.statusCode == 404:
					entry.ErrorClass = "not_found"
				case wrapped.statusCode >= 500:
					entry.ErrorClass = "internal"
				default:
					entry.ErrorClass = "client_error"
				}
			}

			if cfg.OnlyErrors && wrapped.statusCode < 400 {
				return
			}

			// Store asynchronously to not block the response.
			go func() {
				storeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := cfg.Store.Create(storeCtx, *entry); err != nil {
					cfg.Logger.Error("failed to store ledger entry",
						zap.String("request_id", entry.RequestID),
						zap.Error(err))
				}
			}()
		})
	}
}

// sectionFromPath extracts the section key from /api/{section}[/...] paths.
// Non-section API paths (settings, testimonials, etc.) return "".
func sectionFromPath(path string) string {
	const prefix = "/api/"
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(path, prefix)
	if idx := strings.IndexByte(rest, '/'); idx != -1 {
		rest = rest[:idx]
	}
	switch rest {
	case "settings", "testimonials", "chatbot", "upload", "events", "ledger", "keys":
		return ""
	}
	return rest
}

// responseWrapper wraps http.ResponseWriter to capture status code and bytes written.
type responseWrapper struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWrapper) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

// Flush implements http.Flusher.
func (rw *responseWrapper) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// extractIP extracts the client IP from the request.
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// SetErrorClass sets the error class for the current request's ledger entry.
func SetErrorClass(ctx context.Context, class string) {
	if entry, ok := ctx.Value(ctxKeyEntry).(*ledgerstore.Entry); ok {
		entry.ErrorClass = class
	}
}

// SetErrorMessage sets the error message for the current request's ledger entry.
func SetErrorMessage(ctx context.Context, message string) {
	if entry, ok := ctx.Value(ctxKeyEntry).(*ledgerstore.Entry); ok {
		entry.ErrorMessage = message
	}
}

// GetRequestID returns the request ID for the current request.
func GetRequestID(ctx context.Context) string {
	if entry, ok := ctx.Value(ctxKeyEntry).(*ledgerstore.Entry); ok {
		return entry.RequestID
	}
	return ""
}
