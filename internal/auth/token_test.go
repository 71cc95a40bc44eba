package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tiffin-service/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	account := &domain.Account{
		ID:    "acct-1",
		Name:  "Asha",
		Email: "asha@example.com",
		Role:  domain.RoleVendor,
	}

	token, exp, err := tm.GenerateToken(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.Subject)
	assert.Equal(t, domain.RoleVendor, claims.Role)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "Asha", claims.Name)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	other := NewTokenManager("another-secret", 60)

	token, _, err := tm.GenerateToken(&domain.Account{ID: "acct-1", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestPeekSessionDecodesWithoutVerification(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	token, _, err := tm.GenerateToken(&domain.Account{
		ID:    "acct-2",
		Name:  "Ravi",
		Email: "ravi@example.com",
		Role:  domain.RoleDelivery,
	})
	require.NoError(t, err)

	sess := PeekSession(token)
	require.NotNil(t, sess)
	assert.Equal(t, token, sess.Token)
	assert.Equal(t, string(domain.RoleDelivery), sess.Role)
	assert.Equal(t, "ravi@example.com", sess.Email)
	assert.Equal(t, "Ravi", sess.DisplayName)

	assert.Nil(t, PeekSession("not-a-token"))
	assert.Nil(t, PeekSession(""))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("dal-makhani-7", 4)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "dal-makhani-7"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("short"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("long-enough-pass"))
}
