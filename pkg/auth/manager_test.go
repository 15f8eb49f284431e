package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kala-yatra/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(config.JWTConfig{
		SigningKey:      "test-key",
		AccessTokenTTL:  ttl,
		RefreshTokenTTL: time.Hour,
	})
	require.NoError(t, err)
	return m
}

func TestNewManagerValidatesConfig(t *testing.T) {
	_, err := NewManager(config.JWTConfig{AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	assert.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "k", RefreshTokenTTL: time.Hour})
	assert.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "k", AccessTokenTTL: time.Minute})
	assert.Error(t, err)
}

func TestJWTRoundTrip(t *testing.T) {
	m := newTestManager(t, time.Minute)
	userID := uuid.New()

	token, ttl, err := m.NewJWT(userID, "artist@example.com")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "artist@example.com", claims.Email)
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	m := newTestManager(t, -time.Minute)
	token, _, err := m.NewJWT(uuid.New(), "a@b.c")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	other := newTestManager(t, time.Minute)
	other.signingKey = "other-key"
	foreign, _, err := other.NewJWT(uuid.New(), "a@b.c")
	require.NoError(t, err)

	_, err = newTestManager(t, time.Minute).Parse(foreign)
	assert.Error(t, err)
}
