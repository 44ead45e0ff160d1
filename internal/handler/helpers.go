package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"nalevel/internal/config"
	"nalevel/internal/domain"
	"nalevel/internal/domain/models/account"
	"nalevel/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Validation errors carry a "fields" member mapping field paths to messages.
func handleError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		extras := map[string]interface{}{}
		if len(validationErr.Fields) > 0 {
			extras["fields"] = validationErr.Fields
		}
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, err.Error(), extras)
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode() < http.StatusInternalServerError {
		httputil.RespondError(w, httpErr.StatusCode(), err.Error())
		return
	}

	slog.Error("request failed", "error", err)
	httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
}

// PathParam reads a required path value, responding 400 when it is empty
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return value, true
}

// sessionResponse is returned by every endpoint that issues a session token
type sessionResponse struct {
	User  *account.User `json:"user"`
	Token string        `json:"token"`
}

// HealthCheck is a simple health check endpoint
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}

// ClientConfig serves the settings the browser client reads at startup
// GET /api/config
func ClientConfig(cfg *config.Config) http.HandlerFunc {
	body := map[string]string{
		"environment":         cfg.Environment,
		"analyticsTrackingId": cfg.AnalyticsTrackingID,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, body)
	}
}
