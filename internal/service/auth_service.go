package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vcsystems/incident-service/internal/auth"
	"github.com/vcsystems/incident-service/internal/config"
	"github.com/vcsystems/incident-service/internal/domain"
	"github.com/vcsystems/incident-service/internal/repository"
	apperrors "github.com/vcsystems/incident-service/pkg/util/errorutil"
)

// TokenPair carries an access token and its refresh counterpart.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	clients    repository.ClientRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	blacklist  *auth.TokenBlacklist
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	ClientRepo        repository.ClientRepository
	PasswordResetRepo repository.PasswordResetRepository
	Blacklist         *auth.TokenBlacklist
}

// RegisterInput describes a registration payload. CompanyName is required
// for CLIENT accounts and creates the linked client record.
type RegisterInput struct {
	Role           domain.Role
	Name           string
	Email          string
	Password       string
	CompanyName    string
	CompanyAddress *string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		clients:    deps.ClientRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RefreshTokenTTLMinutes),
		blacklist:  deps.Blacklist,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// Register creates a new account and, for clients, the company record.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, *TokenPair, error) {
	if err := auth.ValidatePasswordPolicy(input.Password); err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error(), nil)
	}
	if input.Role == domain.RoleClient && input.CompanyName == "" {
		return nil, nil, apperrors.NewValidationError("client accounts require a company name", nil)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Role:         input.Role,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	if input.Role == domain.RoleClient {
		client := &domain.Client{
			UserID:         user.ID,
			CompanyName:    input.CompanyName,
			CompanyAddress: input.CompanyAddress,
		}
		if err := s.clients.Create(ctx, client); err != nil {
			return nil, nil, err
		}
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates an account by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair and revokes the
// old refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid or expired token")
	}
	if !claims.Refresh {
		return nil, apperrors.NewUnauthorized("not a refresh token")
	}
	if s.blacklist.IsRevoked(ctx, claims.ID) {
		return nil, apperrors.NewUnauthorized("token revoked")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if claims.ExpiresAt != nil {
		_ = s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	}
	return s.issueTokens(user)
}

// Logout revokes the presented access token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokenMgr.ParseToken(accessToken)
	if err != nil {
		return nil // already unusable
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// RequestPasswordReset persists a reset token for the account email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	if err := auth.ValidatePasswordPolicy(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("token expired or used", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// ChangePassword verifies the current password before updating to the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := auth.ValidatePasswordPolicy(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueTokens(user *domain.User) (*TokenPair, error) {
	access, accessExp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokenMgr.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
