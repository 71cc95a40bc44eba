package auth

import (
	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/tiffin-service/internal/session"
)

// PeekSession builds an ephemeral session view from a bearer token
// without verifying the signature, so API callers that carry only an
// Authorization header walk the same route policy as cookie sessions.
// The guard still runs its own expiry check and the API middleware still
// verifies the signature before any identity is trusted. Returns nil for
// tokens that cannot be decoded.
func PeekSession(token string) *session.Session {
	if token == "" {
		return nil
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return &session.Session{
		Token:       token,
		Role:        string(claims.Role),
		Email:       claims.Email,
		DisplayName: claims.Name,
	}
}
