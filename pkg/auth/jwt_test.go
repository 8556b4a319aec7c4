package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Generate("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "a@x.com", claims.Subject)
}

func TestTokenExpiryIsOneHour(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	before := time.Now()
	token, err := svc.Generate("a@x.com")
	require.NoError(t, err)
	after := time.Now()

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	issued := claims.IssuedAt.Time
	expires := claims.ExpiresAt.Time
	assert.Equal(t, time.Hour, expires.Sub(issued))
	assert.False(t, issued.Before(before.Truncate(time.Second)))
	assert.False(t, issued.After(after.Add(time.Second)))
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Generate("a@x.com")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := NewTokenService("secret-one", time.Hour).Generate("a@x.com")
	require.NoError(t, err)

	_, err = NewTokenService("secret-two", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.Error(t, err)
}
