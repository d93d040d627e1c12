package auth

import (
	"log/slog"
	"net/http"

	"github.com/schliff-dev/schliff/pkg/observability"
	"github.com/schliff-dev/schliff/pkg/storage"
)

const (
	unauthenticatedBody = `{"error":{"kind":"secret_key","message":"authentication required"}}`
	rateLimitedBody     = `{"error":{"kind":"param","message":"rate limit exceeded"}}`
	internalErrorBody   = `{"error":{"kind":"unknown","message":"internal authentication error"}}`
)

// Middleware creates HTTP middleware from a Chain and optional RateLimiter.
// It checks the bypass list, runs authentication, injects tenant context,
// and optionally enforces rate limits.
func Middleware(chain *Chain, limiter RateLimiter, bypassEndpoints []string) func(http.Handler) http.Handler {
	bypass := make(map[string]bool, len(bypassEndpoints))
	for _, ep := range bypassEndpoints {
		bypass[ep] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypass[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			result := chain.Authenticate(r.Context(), r)

			if result.Decision == Deny {
				slog.Warn("authentication failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", result.Err,
				)
				writeJSONError(w, unauthenticatedBody, http.StatusUnauthorized)
				return
			}

			if result.Decision != Allow || result.Identity == nil {
				writeJSONError(w, unauthenticatedBody, http.StatusUnauthorized)
				return
			}

			if result.Identity.Subject == "" {
				slog.Error("authenticator returned identity with empty subject")
				writeJSONError(w, internalErrorBody, http.StatusInternalServerError)
				return
			}

			slog.Debug("authentication succeeded",
				"subject", result.Identity.Subject,
				"path", r.URL.Path,
			)

			if limiter != nil {
				if err := limiter.Allow(r.Context(), result.Identity); err != nil {
					slog.Warn("rate limit exceeded",
						"subject", result.Identity.Subject,
						"tier", result.Identity.ServiceTier,
					)
					observability.RateLimitRejectedTotal.WithLabelValues(result.Identity.ServiceTier).Inc()
					writeJSONError(w, rateLimitedBody, http.StatusTooManyRequests)
					return
				}
			}

			ctx := SetIdentity(r.Context(), result.Identity)

			// Inject tenant for storage scoping.
			if tenantID := result.Identity.TenantID(); tenantID != "" {
				ctx = storage.SetTenant(ctx, tenantID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeJSONError writes a pre-serialized JSON error body with the given
// status code.
func writeJSONError(w http.ResponseWriter, body string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// DefaultBypassEndpoints lists endpoints that skip authentication.
var DefaultBypassEndpoints = []string{"/healthz", "/readyz", "/metrics"}
