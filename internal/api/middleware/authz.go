package middleware

import (
	"net/http"

	"github.com/helpdesk14/helpdesk/internal/api/response"
	"github.com/helpdesk14/helpdesk/internal/authz"
)

// Require returns middleware that rejects callers the policy denies for the
// given operation with 403. It covers operations whose decision depends only
// on the caller's role; ownership-sensitive checks stay in the handlers,
// where the resource is at hand.
func Require(op authz.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			caller := GetCaller(r.Context())
			if caller == nil {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", requestID)
				return
			}

			if decision := authz.Decide(caller, op, nil); !decision.Allow {
				response.Err(w, http.StatusForbidden, "FORBIDDEN", "Access denied", requestID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
