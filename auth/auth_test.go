package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", hash)
	assert.True(t, CheckPassword(hash, "Secret123"))
	assert.False(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword("not-a-hash", "Secret123"))
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Minute)

	raw, err := tokens.Issue("admin@x.com", RoleAdmin)
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "admin@x.com", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	raw, err := NewTokens("one", time.Minute).Issue("a@x.com", RoleUser)
	require.NoError(t, err)

	_, err = NewTokens("two", time.Minute).Parse(raw)
	assert.Error(t, err)

	expired := NewTokens("one", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	raw, err = expired.Issue("a@x.com", RoleUser)
	require.NoError(t, err)
	_, err = NewTokens("one", time.Minute).Parse(raw)
	assert.Error(t, err)
}

func TestTokensRequireSecret(t *testing.T) {
	_, err := NewTokens("", 0).Issue("a@x.com", RoleUser)
	assert.Error(t, err)
}
