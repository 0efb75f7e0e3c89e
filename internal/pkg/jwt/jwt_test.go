package jwt

import (
	"testing"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("u1", "s1", user.RoleAdmin)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	for claim, want := range map[string]string{
		"user_id":    "u1",
		"session_id": "s1",
		"role":       "admin",
		"type":       TokenTypeAccess,
	} {
		got, ok := decoded.Get(claim)
		require.True(t, ok, claim)
		assert.Equal(t, want, got, claim)
	}
}

func TestSSEToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	token, expiresIn, err := svc.GenerateSSEToken("u1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestValidateSSEToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	token, _, err := svc.GenerateAccessToken("u1", "s1", user.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(token)
	assert.Error(t, err)
}

func TestValidateSSEToken_RejectsForeignSignature(t *testing.T) {
	other := NewJWTService("another-secret", time.Hour)
	token, _, err := other.GenerateSSEToken("u1")
	require.NoError(t, err)

	_, err = NewJWTService(testSecret, time.Hour).ValidateSSEToken(token)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)
	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc")
	assert.True(t, svc.IsTokenRevoked("abc"))
}
