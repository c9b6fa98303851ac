package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewJWTManager("test-secret-key", 15*time.Minute)

	token, err := m.GenerateAccessToken("8b1f4e0e-7a43-4c67-9d8b-3f7c2b1d0a11")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "8b1f4e0e-7a43-4c67-9d8b-3f7c2b1d0a11", claims.UserID())
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenIDsAreUnique(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)

	a, err := m.GenerateAccessToken("user")
	require.NoError(t, err)
	b, err := m.GenerateAccessToken("user")
	require.NoError(t, err)

	ca, err := m.ParseAndValidate(a)
	require.NoError(t, err)
	cb, err := m.ParseAndValidate(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret1", time.Minute).GenerateAccessToken("user")
	require.NoError(t, err)

	_, err = NewJWTManager("secret2", time.Minute).ParseAndValidate(token)
	assert.Error(t, err)
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := NewJWTManager("secret", time.Minute).ParseAndValidate("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateAccessToken("user")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAndValidate(token)
	assert.Error(t, err)
}
