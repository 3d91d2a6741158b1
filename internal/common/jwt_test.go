package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, "user-123", "alice", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "gigachat", claims.Issuer)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("right-secret", "user-123", "alice", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("wrong-secret", token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken("test-secret", "user-123", "alice", -time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken("test-secret", token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Garbage(t *testing.T) {
	claims, err := ValidateToken("test-secret", "not.a.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
