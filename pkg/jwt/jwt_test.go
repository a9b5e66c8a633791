package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

func newTestManager() *Manager {
	return NewManager("test-secret-key-with-enough-length", "bookstore-api", time.Hour, 24*time.Hour)
}

func TestGenerateAndParse(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(7, "alice", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := m.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "bookstore-api", claims.Issuer)
	assert.Equal(t, "7", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	refresh, err := m.ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, refresh.ID)
}

func TestParseAccessToken_RejectsRefreshToken(t *testing.T) {
	m := newTestManager()
	pair, err := m.GenerateToken(1, "bob", "user")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager("test-secret-key-with-enough-length", "bookstore-api", -time.Minute, time.Hour)
	pair, err := m.GenerateToken(1, "bob", "user")
	require.NoError(t, err)

	_, err = m.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	pair, err := newTestManager().GenerateToken(1, "bob", "user")
	require.NoError(t, err)

	other := NewManager("another-secret", "bookstore-api", time.Hour, time.Hour)
	_, err = other.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, TokenType: TokenTypeAccess})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestManager().ParseToken(signed)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRefreshAccessToken(t *testing.T) {
	m := newTestManager()
	pair, err := m.GenerateToken(3, "carol", "user")
	require.NoError(t, err)

	access, claims, err := m.RefreshAccessToken(pair.RefreshToken, "carol", "admin")
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)

	parsed, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "admin", parsed.Role)

	_, _, err = m.RefreshAccessToken(pair.AccessToken, "carol", "user")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRemainingTTL(t *testing.T) {
	now := time.Now()
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}}
	assert.InDelta(t, time.Hour.Seconds(), c.RemainingTTL(now).Seconds(), 1)

	expired := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour))}}
	assert.Equal(t, time.Duration(0), expired.RemainingTTL(now))
}
