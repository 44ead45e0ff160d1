package account

import (
	"time"
)

// User is the full profile record, persisted under userdata:<id>
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DefaultRole is assigned to every self-registered account
const DefaultRole = "user"

// Credential links an email to its password hash, persisted under user:<email>
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"` // hash, never the plain password
	UserID   string `json:"userId"`
}

// Credentials is the email/password pair presented at sign-up and login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionClaims is what a session token encodes
type SessionClaims struct {
	UserID    string `json:"userId"`
	ExpiresAt int64  `json:"expiresAt"`           // epoch milliseconds
	SessionID string `json:"sessionId,omitempty"` // set only for server-tracked sessions
	IssuedAt  int64  `json:"-"`                   // epoch milliseconds; carried by signed formats only
}

// SessionRecord is the server-side half of a tracked session,
// persisted under session:<sessionId>. Deleting it revokes the token.
type SessionRecord struct {
	UserID    string `json:"userId"`
	ExpiresAt int64  `json:"expiresAt"` // epoch milliseconds
}

// Expired reports whether the claims are past their expiry at now
func (c *SessionClaims) Expired(now time.Time) bool {
	return now.UnixMilli() > c.ExpiresAt
}

// PendingToken is a single-use reset or verification token,
// persisted under reset:<email> or verify:<email>
type PendingToken struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"` // epoch milliseconds
}

// Expired reports whether the token is past its expiry at now
func (t *PendingToken) Expired(now time.Time) bool {
	return now.UnixMilli() > t.ExpiresAt
}

// NotificationKind names the message a Notifier delivers
type NotificationKind string

const (
	NotificationPasswordReset     NotificationKind = "password_reset"
	NotificationEmailVerification NotificationKind = "email_verification"
)

// Notification carries a freshly issued token to its recipient
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	Email     string           `json:"email"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
}
