package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	token, err := GenerateToken("8b0f3c1e-0000-4000-8000-000000000001")
	require.NoError(t, err)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "8b0f3c1e-0000-4000-8000-000000000001", claims.UserID)
}

func TestVerifyTokenRejectsOtherSecret(t *testing.T) {
	InitJWT("secret-a", time.Hour)
	token, err := GenerateToken("user-1")
	require.NoError(t, err)

	InitJWT("secret-b", time.Hour)
	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	InitJWT("test-secret", time.Nanosecond)
	token, err := GenerateToken("user-1")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)
	_, err = VerifyToken(token)
	assert.Error(t, err)
	InitJWT("test-secret", time.Hour)
}

func TestVerifyGarbage(t *testing.T) {
	InitJWT("test-secret", time.Hour)
	_, err := VerifyToken("not-a-token")
	assert.Error(t, err)
}
