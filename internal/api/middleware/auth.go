package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/helpdesk14/helpdesk/internal/api/response"
	"github.com/helpdesk14/helpdesk/internal/auth"
)

const callerKey contextKey = "caller"

// Auth is middleware that extracts the bearer token from the Authorization
// header and resolves it to a Caller. Missing, malformed, expired or
// otherwise invalid tokens return 401 before any business logic runs; the
// response never says which of those it was. Handlers read the Caller from
// the context once and pass it explicitly from there on.
func Auth(resolver *auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			rawToken, ok := bearerToken(r)
			if !ok {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", requestID)
				return
			}

			caller, err := resolver.Resolve(r.Context(), rawToken)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthenticated) {
					response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", requestID)
					return
				}
				slog.Error("failed to resolve caller", "error", err, "requestId", requestID)
				response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Authentication failed", requestID)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCaller retrieves the authenticated Caller from the request context.
func GetCaller(ctx context.Context) *auth.Caller {
	if c, ok := ctx.Value(callerKey).(*auth.Caller); ok {
		return c
	}
	return nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
