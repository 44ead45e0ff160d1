package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"nalevel/internal/httputil"
)

// Recovery turns a handler panic into a 500 problem response.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("handler panicked",
					"panic", rec,
					"request", r.Method+" "+r.URL.Path,
					"query", r.URL.RawQuery,
					"has_session", httputil.BearerToken(r) != "",
					"remote_addr", r.RemoteAddr,
					"stack", string(debug.Stack()),
				)
				httputil.RespondError(w, http.StatusInternalServerError, "the request could not be completed")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
