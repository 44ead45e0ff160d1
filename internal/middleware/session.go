package middleware

import (
	"log/slog"
	"net/http"

	accountSvc "nalevel/internal/domain/services/account"
	"nalevel/internal/httputil"
	accountService "nalevel/internal/service/account"
)

// Session attaches a request-scoped session built from the bearer token.
// Requests without a token get an empty session, so login and signup can
// issue one.
func Session() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := accountService.NewMemorySession(httputil.BearerToken(r))
			next.ServeHTTP(w, httputil.WithSession(r, session))
		})
	}
}

// RequireSession rejects requests whose session does not resolve to a user
// and stores the user in the request context otherwise
func RequireSession(authService accountSvc.AuthService, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session := httputil.GetSession(r)
			if session == nil {
				httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			user, err := authService.GetCurrentUser(r.Context(), session)
			if err != nil {
				logger.Error("session lookup failed",
					"error", err,
					"path", r.URL.Path,
				)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if user == nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			next(w, httputil.WithUser(r, user))
		}
	}
}
