package middleware

import (
	"context"
	"net/http"
	"strings"

	h "campusevents/internal/delivery/http/helpers"
)

// UserHeader carries the caller's user ID, set by the upstream gateway after authentication.
const UserHeader = "X-Auth-User"

type contextKey string

const (
	userIDKey    contextKey = "userID"
	requestIDKey contextKey = "requestID"
)

// SetUserID returns a context with the user ID set.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the caller's user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// Identity copies the gateway user header into the request context. Requests without the
// header pass through anonymously.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(UserHeader)); id != "" {
			r = r.WithContext(SetUserID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser wraps a handler that needs a caller identity and responds 401 when there is none.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing "+UserHeader+" header")
			return
		}
		next(w, r)
	}
}
