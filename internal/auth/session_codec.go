package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"nalevel/internal/domain/models/account"
)

var errMalformedToken = errors.New("malformed session token")

// NewSessionCodec returns the codec named by format ("base64" or "jwt")
func NewSessionCodec(format, secret string) (SessionCodec, error) {
	switch format {
	case "", "base64":
		return Base64Codec{}, nil
	case "jwt":
		if secret == "" {
			return nil, errors.New("jwt session tokens require SESSION_SECRET")
		}
		return &JWTCodec{secret: []byte(secret)}, nil
	default:
		return nil, fmt.Errorf("unknown session token format %q", format)
	}
}

// Base64Codec encodes claims as base64 JSON {userId, expiresAt}.
// Tokens are unsigned, so a server must pair them with session records.
type Base64Codec struct{}

func (Base64Codec) Encode(claims account.SessionClaims) (string, error) {
	raw, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encode session claims: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (Base64Codec) Decode(token string) (*account.SessionClaims, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, errMalformedToken
	}

	var claims account.SessionClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, errMalformedToken
	}
	if claims.UserID == "" || claims.ExpiresAt == 0 {
		return nil, errMalformedToken
	}
	return &claims, nil
}

// JWTCodec signs claims as an HS256 JWT with sub and exp
type JWTCodec struct {
	secret []byte
}

func (c *JWTCodec) Encode(claims account.SessionClaims) (string, error) {
	registered := jwt.RegisteredClaims{
		ID:        claims.SessionID,
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(time.UnixMilli(claims.ExpiresAt)),
	}
	if claims.IssuedAt != 0 {
		registered.IssuedAt = jwt.NewNumericDate(time.UnixMilli(claims.IssuedAt))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, registered).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature only; exp is returned for the service to check
// against its own clock
func (c *JWTCodec) Decode(token string) (*account.SessionClaims, error) {
	var registered jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &registered,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return nil, errMalformedToken
	}

	if registered.Subject == "" || registered.ExpiresAt == nil {
		return nil, errMalformedToken
	}

	claims := &account.SessionClaims{
		UserID:    registered.Subject,
		ExpiresAt: registered.ExpiresAt.UnixMilli(),
		SessionID: registered.ID,
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.UnixMilli()
	}
	return claims, nil
}
