package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 1})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := testJWTService(testJWTSecret)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := testJWTService(testJWTSecret).GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = testJWTService("a-different-secret-of-sufficient-length!").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_EmptyToken(t *testing.T) {
	_, err := testJWTService(testJWTSecret).ValidateToken("")
	assert.Error(t, err)
}

func TestJWTService_GarbageToken(t *testing.T) {
	_, err := testJWTService(testJWTSecret).ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	svc := testJWTService(testJWTSecret)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)

	getter, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())
}
