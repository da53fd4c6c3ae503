package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcsystems/incident-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: "user-1", Role: domain.RoleTechnician, Name: "Ana", Email: "ana@example.com"}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60, 1440)

	tokenStr, expiresAt, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleTechnician, claims.Role)
	assert.False(t, claims.Refresh)
	assert.NotEmpty(t, claims.ID, "tokens must carry a jti so they can be revoked")
}

func TestTokenManager_RefreshTokenIsFlagged(t *testing.T) {
	tm := NewTokenManager("test-secret", 60, 1440)

	tokenStr, _, err := tm.GenerateRefreshToken(testUser())
	require.NoError(t, err)

	claims, err := tm.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.True(t, claims.Refresh)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60, 1440)
	other := NewTokenManager("different-secret", 60, 1440)

	tokenStr, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = other.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60, 1440)
	tm.ttl = -time.Minute

	tokenStr, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = tm.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestTokenManager_UniqueTokenIDs(t *testing.T) {
	tm := NewTokenManager("test-secret", 60, 1440)

	first, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	second, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	firstClaims, err := tm.ParseToken(first)
	require.NoError(t, err)
	secondClaims, err := tm.ParseToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
