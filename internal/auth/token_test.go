package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/smartcity/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("u1", domain.RoleCitizen)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(60*time.Minute), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleCitizen, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken("u1", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).ParseToken(token)
	assert.Error(t, err)
}

func TestExtractExpirationMatchesIssue(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	token, expiresAt, err := tm.GenerateToken("u1", domain.RoleWorker)
	require.NoError(t, err)

	extracted, err := tm.ExtractExpiration(token)
	require.NoError(t, err)
	assert.WithinDuration(t, expiresAt, extracted, time.Second)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("supersecret", 4)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "supersecret"))
	assert.Error(t, ComparePassword(hash, "not-the-password"))
}
