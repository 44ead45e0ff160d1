package domain

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface lets the handler layer stay agnostic of concrete error types.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateSlug      = errors.New("duplicate slug")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrSignup             = errors.New("signup failed")
)

// Domain error types implementing HTTPError
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Resource string
		ID       string
	}

	// AlreadyExistsError indicates a resource with the same key exists
	AlreadyExistsError struct {
		Resource string
		Key      string
	}

	// DuplicateSlugError indicates a post slug is already taken
	DuplicateSlugError struct {
		Slug string
	}

	// InvalidCredentialsError indicates a password mismatch
	InvalidCredentialsError struct{}

	// InvalidTokenError indicates a missing or mismatched reset/verification token
	InvalidTokenError struct {
		Message string
	}

	// TokenExpiredError indicates a reset/verification token past its expiry
	TokenExpiredError struct {
		Message string
	}

	// UnauthenticatedError indicates there is no usable session
	UnauthenticatedError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Resource, e.Key)
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("slug %q is already in use", e.Slug)
}

func (e *InvalidCredentialsError) Error() string { return "invalid email or password" }
func (e *InvalidTokenError) Error() string       { return e.Message }
func (e *TokenExpiredError) Error() string       { return e.Message }
func (e *UnauthenticatedError) Error() string    { return e.Message }

func (e *NotFoundError) StatusCode() int           { return http.StatusNotFound }
func (e *AlreadyExistsError) StatusCode() int      { return http.StatusConflict }
func (e *DuplicateSlugError) StatusCode() int      { return http.StatusConflict }
func (e *InvalidCredentialsError) StatusCode() int { return http.StatusUnauthorized }
func (e *InvalidTokenError) StatusCode() int       { return http.StatusBadRequest }
func (e *TokenExpiredError) StatusCode() int       { return http.StatusGone }
func (e *UnauthenticatedError) StatusCode() int    { return http.StatusUnauthorized }

// Is allows errors.Is() to match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool           { return target == ErrNotFound }
func (e *AlreadyExistsError) Is(target error) bool      { return target == ErrConflict }
func (e *DuplicateSlugError) Is(target error) bool      { return target == ErrDuplicateSlug || target == ErrConflict }
func (e *InvalidCredentialsError) Is(target error) bool { return target == ErrInvalidCredentials }
func (e *InvalidTokenError) Is(target error) bool       { return target == ErrInvalidToken }
func (e *TokenExpiredError) Is(target error) bool       { return target == ErrTokenExpired }
func (e *UnauthenticatedError) Is(target error) bool    { return target == ErrUnauthenticated }

// ValidationError indicates invalid input.
// Fields maps a dotted field path (e.g. "content.0.type") to the violation message.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Message: "validation failed",
		Fields:  map[string]string{field: message},
	}
}

// Error lists the field violations in a stable order
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

// StatusCode implements HTTPError
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// SignupError wraps any failure raised while creating an account.
// The cause stays reachable through errors.Is / errors.As.
type SignupError struct {
	Cause error
}

func (e *SignupError) Error() string {
	return fmt.Sprintf("signup failed: %v", e.Cause)
}

func (e *SignupError) Unwrap() error { return e.Cause }

func (e *SignupError) Is(target error) bool { return target == ErrSignup }

// StatusCode reports the cause's status when it has one
func (e *SignupError) StatusCode() int {
	var httpErr HTTPError
	if errors.As(e.Cause, &httpErr) {
		return httpErr.StatusCode()
	}
	return http.StatusInternalServerError
}
