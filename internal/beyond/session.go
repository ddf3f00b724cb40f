package beyond

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is a bearer token for the character service.
type Session struct {
	Token string
}

// ExpiresAt reads the expiry claim from the session's JWT. The signature is
// not verified: the token belongs to the remote service and is only being
// inspected, not trusted.
func (s Session) ExpiresAt() (time.Time, error) {
	if s.Token == "" {
		return time.Time{}, fmt.Errorf("session token is empty")
	}
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.Token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parse session token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("session token has no expiry claim")
	}
	return claims.ExpiresAt.Time, nil
}

// Valid reports whether the session can still be used at the given instant.
// A token without a parseable expiry is treated as expired.
func (s Session) Valid(now time.Time) bool {
	expiry, err := s.ExpiresAt()
	if err != nil {
		return false
	}
	return now.Before(expiry)
}
