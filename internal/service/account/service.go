package account

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"nalevel/internal/auth"
	"nalevel/internal/domain"
	"nalevel/internal/domain/models/account"
	"nalevel/internal/domain/repositories"
	accountSvc "nalevel/internal/domain/services/account"
)

// Key layout of the account records
func credentialKey(email string) string { return "user:" + email }
func userKey(userID string) string      { return "userdata:" + userID }
func resetKey(email string) string      { return "reset:" + email }
func verifyKey(email string) string     { return "verify:" + email }
func sessionRecordKey(id string) string { return SessionKey + ":" + id }

// Config holds the token lifetimes
type Config struct {
	SessionTTL time.Duration
	TokenTTL   time.Duration

	// TrackSessions persists a record per issued session and only accepts
	// tokens whose record still exists. Required wherever tokens come from
	// untrusted callers.
	TrackSessions bool
}

// authService implements AuthService over a key-value store
type authService struct {
	// mu serializes check-then-write sequences on account records
	mu sync.Mutex

	store    repositories.KeyValueStore
	hasher   auth.PasswordHasher
	codec    auth.SessionCodec
	notifier accountSvc.Notifier
	cfg      Config
	now      func() time.Time
	newToken func() string
	logger   *slog.Logger
}

// Option customizes the auth service
type Option func(*authService)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *authService) { s.now = now }
}

// WithTokenGenerator overrides the uuid generator used for user ids and tokens
func WithTokenGenerator(newToken func() string) Option {
	return func(s *authService) { s.newToken = newToken }
}

// NewAuthService creates a new auth service
func NewAuthService(
	store repositories.KeyValueStore,
	hasher auth.PasswordHasher,
	codec auth.SessionCodec,
	notifier accountSvc.Notifier,
	cfg Config,
	logger *slog.Logger,
	opts ...Option,
) accountSvc.AuthService {
	s := &authService{
		store:    store,
		hasher:   hasher,
		codec:    codec,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
		newToken: uuid.NewString,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// getJSON decodes the record under key into out.
// Returns an error wrapping domain.ErrNotFound when the key is absent.
func (s *authService) getJSON(ctx context.Context, key string, out any) error {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func putJSON(key string, v any) (repositories.Mutation, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return repositories.Mutation{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return repositories.Put(key, raw), nil
}

func (s *authService) loadCredential(ctx context.Context, email string) (*account.Credential, error) {
	var cred account.Credential
	if err := s.getJSON(ctx, credentialKey(email), &cred); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Resource: "account", ID: email}
		}
		return nil, err
	}
	return &cred, nil
}

func (s *authService) loadUser(ctx context.Context, userID string) (*account.User, error) {
	var user account.User
	if err := s.getJSON(ctx, userKey(userID), &user); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Resource: "user", ID: userID}
		}
		return nil, err
	}
	return &user, nil
}

// issueSession encodes a fresh session token for userID into session
func (s *authService) issueSession(ctx context.Context, session accountSvc.SessionStore, userID string) error {
	now := s.now()
	claims := account.SessionClaims{
		UserID:    userID,
		ExpiresAt: now.Add(s.cfg.SessionTTL).UnixMilli(),
		IssuedAt:  now.UnixMilli(),
	}

	if s.cfg.TrackSessions {
		claims.SessionID = s.newToken()
		mut, err := putJSON(sessionRecordKey(claims.SessionID), account.SessionRecord{
			UserID:    claims.UserID,
			ExpiresAt: claims.ExpiresAt,
		})
		if err != nil {
			return err
		}
		if err := s.store.Apply(ctx, mut); err != nil {
			return fmt.Errorf("save session record: %w", err)
		}
	}

	token, err := s.codec.Encode(claims)
	if err != nil {
		return err
	}
	if err := session.SetToken(ctx, token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	return nil
}

func (s *authService) SignUp(ctx context.Context, session accountSvc.SessionStore, creds account.Credentials, name string) (*account.User, error) {
	user, err := s.signUp(ctx, session, creds, name)
	if err != nil {
		return nil, &domain.SignupError{Cause: err}
	}
	return user, nil
}

func (s *authService) signUp(ctx context.Context, session accountSvc.SessionStore, creds account.Credentials, name string) (*account.User, error) {
	creds.Email = normalizeEmail(creds.Email)
	if err := validateSignUp(&creds, name); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &account.User{
		ID:        s.newToken(),
		Email:     creds.Email,
		Name:      strings.TrimSpace(name),
		Role:      account.DefaultRole,
		CreatedAt: now,
		UpdatedAt: now,
	}
	cred := account.Credential{Email: creds.Email, Password: hash, UserID: user.ID}

	userMut, err := putJSON(userKey(user.ID), user)
	if err != nil {
		return nil, err
	}
	credMut, err := putJSON(credentialKey(cred.Email), cred)
	if err != nil {
		return nil, err
	}
	if err := s.createAccount(ctx, creds.Email, userMut, credMut); err != nil {
		return nil, err
	}

	if err := s.issueSession(ctx, session, user.ID); err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		"user_id", user.ID,
		"email", user.Email,
	)

	return user, nil
}

// createAccount writes the records unless a credential for email already exists
func (s *authService) createAccount(ctx context.Context, email string, mutations ...repositories.Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.loadCredential(ctx, email)
	if err == nil {
		return &domain.AlreadyExistsError{Resource: "account", Key: email}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if err := s.store.Apply(ctx, mutations...); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

func (s *authService) Login(ctx context.Context, session accountSvc.SessionStore, creds account.Credentials) (*account.User, error) {
	creds.Email = normalizeEmail(creds.Email)
	if err := validateLogin(&creds); err != nil {
		return nil, err
	}

	cred, err := s.loadCredential(ctx, creds.Email)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(cred.Password, creds.Password) {
		s.logger.Warn("login rejected", "email", creds.Email)
		return nil, &domain.InvalidCredentialsError{}
	}

	user, err := s.loadUser(ctx, cred.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.issueSession(ctx, session, user.ID); err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", "user_id", user.ID)
	return user, nil
}

// issuePendingToken stores a fresh token under key and notifies the owner of email
func (s *authService) issuePendingToken(ctx context.Context, kind account.NotificationKind, key, email string) (*account.PendingToken, error) {
	expiresAt := s.now().Add(s.cfg.TokenTTL)
	pending := &account.PendingToken{
		Token:     s.newToken(),
		ExpiresAt: expiresAt.UnixMilli(),
	}

	mut, err := putJSON(key, pending)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	err = s.store.Apply(ctx, mut)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("save %s token: %w", kind, err)
	}

	// Delivery is best effort: the token is already valid
	err = s.notifier.Notify(ctx, account.Notification{
		Kind:      kind,
		Email:     email,
		Token:     pending.Token,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		s.logger.Error("notification failed",
			"kind", kind,
			"email", email,
			"error", err,
		)
	}

	return pending, nil
}

// consumePendingToken checks token against the record under key.
// A missing record or mismatch is InvalidTokenError; an expired record
// is deleted and reported as TokenExpiredError.
func (s *authService) consumePendingToken(ctx context.Context, key, token, label string) error {
	var pending account.PendingToken
	if err := s.getJSON(ctx, key, &pending); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.InvalidTokenError{Message: "no pending " + label}
		}
		return err
	}

	if pending.Expired(s.now()) {
		if err := s.store.Apply(ctx, repositories.Remove(key)); err != nil {
			return fmt.Errorf("purge expired %s: %w", label, err)
		}
		return &domain.TokenExpiredError{Message: label + " token has expired"}
	}

	if subtle.ConstantTimeCompare([]byte(pending.Token), []byte(token)) != 1 {
		return &domain.InvalidTokenError{Message: "invalid " + label + " token"}
	}
	return nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if _, err := s.loadCredential(ctx, email); err != nil {
		return err
	}

	if _, err := s.issuePendingToken(ctx, account.NotificationPasswordReset, resetKey(email), email); err != nil {
		return err
	}

	s.logger.Info("password reset requested", "email", email)
	return nil
}

func (s *authService) ValidateResetToken(ctx context.Context, email, token string) (bool, error) {
	email = normalizeEmail(email)

	var pending account.PendingToken
	if err := s.getJSON(ctx, resetKey(email), &pending); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if pending.Expired(s.now()) {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(pending.Token), []byte(token)) == 1, nil
}

func (s *authService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	email = normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.consumePendingToken(ctx, resetKey(email), token, "password reset"); err != nil {
		return err
	}
	if err := validateNewPassword(newPassword); err != nil {
		return err
	}

	cred, err := s.loadCredential(ctx, email)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	cred.Password = hash

	credMut, err := putJSON(credentialKey(email), cred)
	if err != nil {
		return err
	}
	if err := s.store.Apply(ctx, credMut, repositories.Remove(resetKey(email))); err != nil {
		return fmt.Errorf("save password: %w", err)
	}

	s.logger.Info("password reset", "email", email)
	return nil
}

func (s *authService) SendVerificationEmail(ctx context.Context, session accountSvc.SessionStore, email string) (string, error) {
	email = normalizeEmail(email)

	user, err := s.activeUser(ctx, session, false)
	if err != nil {
		return "", err
	}
	if user == nil || user.Email != email {
		return "", &domain.UnauthenticatedError{Message: "sign in as " + email + " to verify it"}
	}

	pending, err := s.issuePendingToken(ctx, account.NotificationEmailVerification, verifyKey(email), email)
	if err != nil {
		return "", err
	}

	s.logger.Info("verification email sent", "user_id", user.ID)
	return pending.Token, nil
}

func (s *authService) VerifyEmail(ctx context.Context, session accountSvc.SessionStore, token, email string) error {
	email = normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.consumePendingToken(ctx, verifyKey(email), token, "email verification"); err != nil {
		return err
	}

	user, err := s.activeUser(ctx, session, false)
	if err != nil {
		return err
	}
	if user == nil || user.Email != email {
		return &domain.NotFoundError{Resource: "session user", ID: email}
	}

	user.EmailVerified = true
	user.UpdatedAt = s.now()

	userMut, err := putJSON(userKey(user.ID), user)
	if err != nil {
		return err
	}
	if err := s.store.Apply(ctx, userMut, repositories.Remove(verifyKey(email))); err != nil {
		return fmt.Errorf("save verified user: %w", err)
	}

	s.logger.Info("email verified", "user_id", user.ID)
	return nil
}

func (s *authService) Logout(ctx context.Context, session accountSvc.SessionStore) error {
	token, err := session.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		if claims, err := s.codec.Decode(token); err == nil {
			if err := s.revokeSession(ctx, claims); err != nil {
				return err
			}
		}
	}

	if err := session.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

func (s *authService) ValidateSession(ctx context.Context, session accountSvc.SessionStore) (bool, error) {
	user, err := s.activeUser(ctx, session, true)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (s *authService) GetCurrentUser(ctx context.Context, session accountSvc.SessionStore) (*account.User, error) {
	return s.activeUser(ctx, session, false)
}

// activeUser resolves the session token to its user. It returns nil without
// error when the token is absent, malformed, expired, revoked or dangling;
// clear removes such a token from the session.
func (s *authService) activeUser(ctx context.Context, session accountSvc.SessionStore, clear bool) (*account.User, error) {
	token, err := session.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	invalid := func(reason string) (*account.User, error) {
		s.logger.Debug("session rejected", "reason", reason)
		if clear {
			if err := session.ClearToken(ctx); err != nil {
				return nil, fmt.Errorf("clear session: %w", err)
			}
		}
		return nil, nil
	}

	claims, err := s.codec.Decode(token)
	if err != nil {
		return invalid("malformed")
	}
	if claims.Expired(s.now()) {
		if clear {
			if err := s.revokeSession(ctx, claims); err != nil {
				return nil, err
			}
		}
		return invalid("expired")
	}

	if s.cfg.TrackSessions {
		live, err := s.sessionLive(ctx, claims)
		if err != nil {
			return nil, err
		}
		if !live {
			return invalid("revoked")
		}
	}

	user, err := s.loadUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return invalid("user missing")
		}
		return nil, err
	}
	return user, nil
}

// sessionLive reports whether a tracked session record backs claims
func (s *authService) sessionLive(ctx context.Context, claims *account.SessionClaims) (bool, error) {
	if claims.SessionID == "" {
		return false, nil
	}

	var record account.SessionRecord
	if err := s.getJSON(ctx, sessionRecordKey(claims.SessionID), &record); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.UserID == claims.UserID, nil
}

// revokeSession deletes the record of a tracked session
func (s *authService) revokeSession(ctx context.Context, claims *account.SessionClaims) error {
	if !s.cfg.TrackSessions || claims.SessionID == "" {
		return nil
	}
	if err := s.store.Apply(ctx, repositories.Remove(sessionRecordKey(claims.SessionID))); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
