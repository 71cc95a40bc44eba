package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenExpiringAt(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "acct-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestIsExpiredPastTimestamp(t *testing.T) {
	checker := NewExpiryChecker()
	token := tokenExpiringAt(t, time.Now().Add(-time.Minute))
	assert.True(t, checker.IsExpired(token))
}

func TestIsExpiredFutureTimestamp(t *testing.T) {
	checker := NewExpiryChecker()
	token := tokenExpiringAt(t, time.Now().Add(time.Hour))
	assert.False(t, checker.IsExpired(token))
}

func TestIsExpiredMalformedToken(t *testing.T) {
	checker := NewExpiryChecker()

	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		assert.True(t, checker.IsExpired(token), "token %q", token)
	}
}

func TestIsExpiredMissingExpClaim(t *testing.T) {
	checker := NewExpiryChecker()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "acct-1"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	assert.True(t, checker.IsExpired(token))
}

func TestIsExpiredIgnoresSignature(t *testing.T) {
	// Expiry checking is a UX concern; a wrong signature must not make a
	// still-valid token look expired.
	checker := NewExpiryChecker()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)
	assert.False(t, checker.IsExpired(token))
}

func TestIsExpiredWithInjectedClock(t *testing.T) {
	exp := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	token := tokenExpiringAt(t, exp)

	before := NewExpiryChecker().WithClock(func() time.Time { return exp.Add(-time.Second) })
	assert.False(t, before.IsExpired(token))

	at := NewExpiryChecker().WithClock(func() time.Time { return exp })
	assert.True(t, at.IsExpired(token))

	after := NewExpiryChecker().WithClock(func() time.Time { return exp.Add(time.Second) })
	assert.True(t, after.IsExpired(token))
}
