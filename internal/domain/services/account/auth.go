package account

import (
	"context"

	"nalevel/internal/domain/models/account"
)

// SessionStore holds the session token of one caller.
// It replaces an ambient "current user" lookup: every session-aware
// operation receives the store explicitly.
type SessionStore interface {
	// Token returns the current token, or "" when there is none
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Notifier delivers reset and verification tokens to users
type Notifier interface {
	Notify(ctx context.Context, n account.Notification) error
}

// AuthService manages credentials, sessions and the password-reset and
// email-verification token lifecycles
type AuthService interface {
	// SignUp creates the user and credential records and starts a session.
	// Every failure is returned as a *domain.SignupError wrapping the cause.
	SignUp(ctx context.Context, session SessionStore, creds account.Credentials, name string) (*account.User, error)

	// Login checks the password and starts a session.
	// Unknown email: NotFoundError. Wrong password: InvalidCredentialsError.
	Login(ctx context.Context, session SessionStore, creds account.Credentials) (*account.User, error)

	// RequestPasswordReset issues a reset token, replacing any pending one
	RequestPasswordReset(ctx context.Context, email string) error

	// ValidateResetToken reports whether token is the pending, unexpired reset token for email
	ValidateResetToken(ctx context.Context, email, token string) (bool, error)

	// ResetPassword consumes the reset token and replaces the password hash.
	// An expired token is purged and reported as TokenExpiredError.
	ResetPassword(ctx context.Context, email, token, newPassword string) error

	// SendVerificationEmail issues a verification token for the session's own email
	SendVerificationEmail(ctx context.Context, session SessionStore, email string) (string, error)

	// VerifyEmail consumes the verification token and marks the session user verified
	VerifyEmail(ctx context.Context, session SessionStore, token, email string) error

	// Logout clears the session token and deletes its server-side record, if any
	Logout(ctx context.Context, session SessionStore) error

	// ValidateSession reports whether the session token decodes, is unexpired and
	// references an existing user. An invalid token is cleared.
	ValidateSession(ctx context.Context, session SessionStore) (bool, error)

	// GetCurrentUser returns the session user, or nil without error when there is no valid session
	GetCurrentUser(ctx context.Context, session SessionStore) (*account.User, error)
}
