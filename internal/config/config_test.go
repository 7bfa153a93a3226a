package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewPasswordConfig_CostOutOfRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")
	_, err := NewPasswordConfig()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "20")
	_, err = NewPasswordConfig()
	assert.Error(t, err)
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10} // low cost keeps the test fast

	hash, err := cfg.HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, cfg.VerifyPassword("s3cret-password", hash))
	assert.False(t, cfg.VerifyPassword("wrong-password", hash))
}

func TestPasswordConfig_PepperChangesVerification(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "pepper"}
	plain := &PasswordConfig{BcryptCost: 10}

	hash, err := peppered.HashPassword("pw")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("pw", hash))
	assert.False(t, plain.VerifyPassword("pw", hash), "hash is bound to the pepper")
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	assert.Error(t, err)
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err := NewJWTConfig()
	assert.Error(t, err)
}

func TestNewExportConfig(t *testing.T) {
	t.Setenv("EXPORT_TIMEOUT", "")
	cfg, err := NewExportConfig()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.Timeout)

	t.Setenv("EXPORT_TIMEOUT", "90s")
	cfg, err = NewExportConfig()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestNewExportConfig_Invalid(t *testing.T) {
	t.Setenv("EXPORT_TIMEOUT", "nope")
	_, err := NewExportConfig()
	assert.Error(t, err)

	t.Setenv("EXPORT_TIMEOUT", "-5s")
	_, err = NewExportConfig()
	assert.Error(t, err)
}
