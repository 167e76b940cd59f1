package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireUser rejects anonymous callers with 401. Store ownership is checked
// further down, by the services, once the store id is known.
func RequireUser(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUserID(r.Context()); !ok {
				logger.Debug("Anonymous request to protected endpoint",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
