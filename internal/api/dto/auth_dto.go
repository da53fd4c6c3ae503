package dto

import (
	"time"

	"github.com/vcsystems/incident-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Role           domain.Role `json:"role"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Password       string      `json:"password"`
	CompanyName    string      `json:"company_name,omitempty"`
	CompanyAddress *string     `json:"company_address,omitempty"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordResetRequest payload.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm payload.
type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// TokenResponse carries issued tokens.
type TokenResponse struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// UserResponse represents an account without credentials.
type UserResponse struct {
	ID    string      `json:"id"`
	Role  domain.Role `json:"role"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
}

// FromUser maps a user to its response shape.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Role:  user.Role,
		Name:  user.Name,
		Email: user.Email,
	}
}
