// Package session resolves the authenticated identity from stored
// credentials: token claim decoding, expiry checks, and an observable
// session service consumed by the dispatcher and command guards.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload of an access token. The storefront API
// issues tokens with the subject set to the user's email and iat/exp in
// seconds since epoch.
type Claims struct {
	jwt.RegisteredClaims
}

// Email returns the token subject.
func (c *Claims) Email() string {
	return c.Subject
}

// DecodeError reports a structurally invalid token: wrong segment count,
// bad base64, or an unparsable payload.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "malformed token: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses the token's claims without verifying the signature.
// Signature verification is the server's job on every protected call; the
// decoded claims are display-only and never treated as proof of
// authorization.
func Decode(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return claims, nil
}

// IsExpired reports whether the token's exp claim is at or before now.
// A token that cannot be decoded, or that carries no expiry, counts as
// expired.
func IsExpired(token string) bool {
	claims, err := Decode(token)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return !claims.ExpiresAt.After(time.Now())
}
