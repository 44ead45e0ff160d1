package handler

import (
	"log/slog"
	"net/http"

	"nalevel/internal/domain/models/account"
	accountSvc "nalevel/internal/domain/services/account"
	"nalevel/internal/httputil"
)

// AuthHandler exposes the credential and session operations.
// Every route expects the Session middleware to have attached a session.
type AuthHandler struct {
	authService accountSvc.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService accountSvc.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type tokenRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

// respondSession writes the user together with the freshly issued token
func (h *AuthHandler) respondSession(w http.ResponseWriter, r *http.Request, status int, user *account.User) {
	token, err := httputil.GetSession(r).Token(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, status, sessionResponse{User: user, Token: token})
}

// SignUp registers an account and starts a session
// POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.SignUp(r.Context(), httputil.GetSession(r),
		account.Credentials{Email: req.Email, Password: req.Password}, req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	h.respondSession(w, r, http.StatusCreated, user)
}

// Login verifies credentials and starts a session
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req account.Credentials
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.Login(r.Context(), httputil.GetSession(r), req)
	if err != nil {
		handleError(w, err)
		return
	}

	h.respondSession(w, r, http.StatusOK, user)
}

// Logout ends the caller's session
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), httputil.GetSession(r)); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateSession reports whether the bearer token is a live session
// GET /api/auth/session
func (h *AuthHandler) ValidateSession(w http.ResponseWriter, r *http.Request) {
	valid, err := h.authService.ValidateSession(r.Context(), httputil.GetSession(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

// CurrentUser returns the session's user
// GET /api/auth/me
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetCurrentUser(r.Context(), httputil.GetSession(r))
	if err != nil {
		handleError(w, err)
		return
	}
	if user == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired session")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, user)
}

// RequestPasswordReset issues a reset token to the account's email
// POST /api/auth/password-reset
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// ValidateResetToken checks a reset token without consuming it
// POST /api/auth/password-reset/validate
func (h *AuthHandler) ValidateResetToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	valid, err := h.authService.ValidateResetToken(r.Context(), req.Email, req.Token)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

// ResetPassword consumes a reset token and sets the new password
// POST /api/auth/password-reset/confirm
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req.Email, req.Token, req.Password); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendVerificationEmail issues a verification token for the session's email
// POST /api/auth/verify-email
func (h *AuthHandler) SendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.authService.SendVerificationEmail(r.Context(), httputil.GetSession(r), req.Email); err != nil {
		handleError(w, err)
		return
	}
	// The token only travels through the notifier
	w.WriteHeader(http.StatusAccepted)
}

// VerifyEmail consumes a verification token
// POST /api/auth/verify-email/confirm
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authService.VerifyEmail(r.Context(), httputil.GetSession(r), req.Token, req.Email); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
