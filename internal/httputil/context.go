package httputil

import (
	"context"
	"net/http"

	"nalevel/internal/domain/models/account"
	accountSvc "nalevel/internal/domain/services/account"
)

// Context key type to avoid collisions
type contextKey string

const (
	sessionKey contextKey = "session"
	userKey    contextKey = "user"
)

// WithSession adds the caller's session store to the request context
func WithSession(r *http.Request, session accountSvc.SessionStore) *http.Request {
	ctx := context.WithValue(r.Context(), sessionKey, session)
	return r.WithContext(ctx)
}

// GetSession retrieves the session store from context, nil if not found
func GetSession(r *http.Request) accountSvc.SessionStore {
	session, _ := r.Context().Value(sessionKey).(accountSvc.SessionStore)
	return session
}

// WithUser adds the authenticated user to the request context
func WithUser(r *http.Request, user *account.User) *http.Request {
	ctx := context.WithValue(r.Context(), userKey, user)
	return r.WithContext(ctx)
}

// GetUser retrieves the authenticated user from context, nil if not found
func GetUser(r *http.Request) *account.User {
	user, _ := r.Context().Value(userKey).(*account.User)
	return user
}

// GetUserID returns the authenticated user's id, empty string if not found
func GetUserID(r *http.Request) string {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return ""
}
