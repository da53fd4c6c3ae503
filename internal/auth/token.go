package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vcsystems/incident-service/internal/domain"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret     []byte
	ttl        time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes, refreshTTLMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	if refreshTTLMinutes <= 0 {
		refreshTTLMinutes = 24 * 60
	}
	return &TokenManager{
		secret:     []byte(secret),
		ttl:        time.Duration(ttlMinutes) * time.Minute,
		refreshTTL: time.Duration(refreshTTLMinutes) * time.Minute,
	}
}

// Claims describes the JWT payload.
type Claims struct {
	UserID  string      `json:"uid"`
	Role    domain.Role `json:"role"`
	Refresh bool        `json:"refresh,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs an access token for the user.
func (tm *TokenManager) GenerateToken(user *domain.User) (string, time.Time, error) {
	return tm.sign(user, tm.ttl, false)
}

// GenerateRefreshToken builds a longer-lived refresh token.
func (tm *TokenManager) GenerateRefreshToken(user *domain.User) (string, time.Time, error) {
	return tm.sign(user, tm.refreshTTL, true)
}

func (tm *TokenManager) sign(user *domain.User, ttl time.Duration, refresh bool) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID:  user.ID,
		Role:    user.Role,
		Refresh: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
