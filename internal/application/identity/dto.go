package identity

import (
	"time"

	"github.com/erpsuite/backend/internal/domain/identity"
	"github.com/erpsuite/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// RegisterInput is the self-registration payload
type RegisterInput struct {
	Username        string `json:"username" binding:"required,min=3,max=100"`
	Email           string `json:"email" binding:"required,email,max=200"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FirstName       string `json:"first_name" binding:"max=100"`
	LastName        string `json:"last_name" binding:"max=100"`
	CompanyCode     string `json:"company_code" binding:"max=50"`
}

// LoginInput carries login credentials
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenInput carries the refresh token to exchange
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileInput carries profile changes; nil means unchanged
type UpdateProfileInput struct {
	Email     *string `json:"email" binding:"omitempty,email,max=200"`
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
}

// ChangePasswordInput carries the current and the new password
type ChangePasswordInput struct {
	CurrentPassword    string `json:"current_password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required,min=8,max=72"`
	NewPasswordConfirm string `json:"new_password_confirm" binding:"required"`
}

// LogoutInput identifies the access token to revoke, and optionally the
// refresh token issued with it
type LogoutInput struct {
	AccessClaims *auth.Claims `json:"-"`
	RefreshToken string       `json:"refresh_token"`
}

// ProfileResponse is the authenticated user as returned by the API
type ProfileResponse struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AuthResult is returned by register, login and refresh
type AuthResult struct {
	User   ProfileResponse `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ToProfileResponse maps the domain user
func ToProfileResponse(u *identity.User) ProfileResponse {
	return ProfileResponse{
		ID:          u.ID,
		CompanyID:   u.TenantID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		Phone:       u.Phone,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
