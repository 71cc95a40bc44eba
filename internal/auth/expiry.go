package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ExpiryChecker answers "is this token past its expiry" without verifying
// the signature. It backs the route guard and the expiry poller, which
// only need a UX-grade answer; signature verification stays with
// TokenManager on the API path. Anything that cannot be decoded counts as
// expired.
type ExpiryChecker struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewExpiryChecker builds a checker using the wall clock.
func NewExpiryChecker() *ExpiryChecker {
	return &ExpiryChecker{parser: jwt.NewParser(), now: time.Now}
}

// WithClock overrides the clock, for tests.
func (e *ExpiryChecker) WithClock(now func() time.Time) *ExpiryChecker {
	e.now = now
	return e
}

// IsExpired reports whether the token's exp claim is in the past.
// Malformed tokens and tokens without an exp claim report true.
func (e *ExpiryChecker) IsExpired(token string) bool {
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := e.parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !e.now().Before(exp.Time)
}
