// Package identity implements registration, login and profile use cases.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/erpsuite/backend/internal/domain/company"
	"github.com/erpsuite/backend/internal/domain/identity"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/auth"
	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/erpsuite/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantResolver finds the company a new user registers into
type TenantResolver interface {
	ResolveTenant(ctx context.Context, code string) (*company.Company, error)
}

// AuthServiceConfig contains login protection settings
type AuthServiceConfig struct {
	MaxLoginAttempts int
	LockDuration     time.Duration
}

// AuthServiceConfigFrom maps the auth section of the application config
func AuthServiceConfigFrom(cfg config.AuthConfig) AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: cfg.MaxLoginAttempts,
		LockDuration:     cfg.LockDuration,
	}
}

var (
	errPasswordMismatch = shared.Errorf(shared.ErrValidation, "passwords do not match")
	errAccountLocked    = shared.Errorf(shared.ErrUnauthorized, "account is locked, try again later")
	errAccountInactive  = shared.Errorf(shared.ErrUnauthorized, "account is inactive")
	errSessionExpired   = shared.Errorf(shared.ErrUnauthorized, "invalid or expired refresh token")
)

// AuthService handles authentication operations
type AuthService struct {
	users     identity.UserRepository
	tenants   TenantResolver
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	config    AuthServiceConfig
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users identity.UserRepository,
	tenants TenantResolver,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	cfg AuthServiceConfig,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tenants:   tenants,
		jwt:       jwtService,
		blacklist: blacklist,
		config:    cfg,
		logger:    log,
	}
}

// Register creates a user in the requested (or default) company and signs
// it in
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Password != in.PasswordConfirm {
		return nil, errPasswordMismatch
	}
	if err := identity.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "username is already taken")
	}
	taken, err = s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "email is already registered")
	}

	tenant, err := s.tenants.ResolveTenant(ctx, in.CompanyCode)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(tenant.ID, in.Username, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if err := user.SetName(in.FirstName, in.LastName); err != nil {
		return nil, err
	}
	user.RecordLoginSuccess()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	logger.FromContextOr(ctx, s.logger).Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("company_id", tenant.ID.String()))
	return &AuthResult{User: ToProfileResponse(user), Tokens: tokens}, nil
}

// Login verifies credentials and issues a token pair. Unknown users and
// wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	log := logger.FromContextOr(ctx, s.logger)

	user, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Warn("login for unknown user", zap.String("username", in.Username))
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.IsLocked() {
		log.Warn("login for locked account", zap.String("user_id", user.ID.String()))
		return nil, errAccountLocked
	}
	if !user.IsActive {
		return nil, errAccountInactive
	}

	if !user.VerifyPassword(in.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.users.Save(ctx, user); err != nil {
			log.Error("failed to record login failure", zap.Error(err))
		}
		if locked {
			log.Warn("account locked after failed logins",
				zap.String("user_id", user.ID.String()),
				zap.Int("max_attempts", s.config.MaxLoginAttempts))
			return nil, errAccountLocked
		}
		return nil, identity.ErrInvalidCredentials
	}

	user.RecordLoginSuccess()
	if err := s.users.Save(ctx, user); err != nil {
		log.Error("failed to record login", zap.Error(err))
	}

	tokens, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	log.Info("user logged in", zap.String("user_id", user.ID.String()))
	return &AuthResult{User: ToProfileResponse(user), Tokens: tokens}, nil
}

// RefreshToken exchanges a valid refresh token for a new pair. The
// consumed refresh token is revoked.
func (s *AuthService) RefreshToken(ctx context.Context, in RefreshTokenInput) (*AuthResult, error) {
	claims, err := s.jwt.ValidateRefreshToken(in.RefreshToken)
	if err != nil {
		return nil, errSessionExpired
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, errSessionExpired
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errSessionExpired
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, errAccountInactive
	}

	tokens, _, err := s.jwt.RefreshTokenPair(in.RefreshToken, user.Username)
	if err != nil {
		if errors.Is(err, auth.ErrMaxRefreshExceeded) {
			return nil, shared.Errorf(shared.ErrUnauthorized, "session expired, please log in again")
		}
		return nil, errSessionExpired
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		logger.FromContextOr(ctx, s.logger).Error("failed to revoke consumed refresh token", zap.Error(err))
	}
	return &AuthResult{User: ToProfileResponse(user), Tokens: tokens}, nil
}

// GetProfile returns the authenticated user
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToProfileResponse(user)
	return &resp, nil
}

// UpdateProfile changes contact fields of the authenticated user
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		taken, err := s.users.ExistsByEmailExcluding(ctx, *in.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.Errorf(shared.ErrAlreadyExists, "email is already registered")
		}
		if err := user.SetEmail(*in.Email); err != nil {
			return nil, err
		}
	}
	if in.FirstName != nil || in.LastName != nil {
		first, last := user.FirstName, user.LastName
		if in.FirstName != nil {
			first = *in.FirstName
		}
		if in.LastName != nil {
			last = *in.LastName
		}
		if err := user.SetName(first, last); err != nil {
			return nil, err
		}
	}
	if in.Phone != nil {
		if err := user.SetPhone(*in.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToProfileResponse(user)
	return &resp, nil
}

// ChangePassword replaces the password and invalidates every token issued
// to the user so far
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, in ChangePasswordInput) error {
	if in.NewPassword != in.NewPasswordConfirm {
		return errPasswordMismatch
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(in.CurrentPassword, in.NewPassword); err != nil {
		return err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	if err := s.blacklist.RevokeUser(ctx, user.ID.String(), s.jwt.RefreshTokenExpiration()); err != nil {
		return err
	}
	logger.FromContextOr(ctx, s.logger).Info("password changed", zap.String("user_id", user.ID.String()))
	return nil
}

// Logout revokes the presented access token and, when supplied, the
// refresh token of the same session
func (s *AuthService) Logout(ctx context.Context, in LogoutInput) error {
	if in.AccessClaims == nil {
		return shared.ErrUnauthorized
	}
	if err := s.blacklist.Revoke(ctx, in.AccessClaims.ID, in.AccessClaims.RemainingTTL()); err != nil {
		return err
	}
	if in.RefreshToken == "" {
		return nil
	}
	refresh, err := s.jwt.ValidateRefreshToken(in.RefreshToken)
	if err != nil || refresh.UserID != in.AccessClaims.UserID {
		// an unusable refresh token needs no revocation
		return nil
	}
	return s.blacklist.Revoke(ctx, refresh.ID, refresh.RemainingTTL())
}

// ValidateAccessToken checks signature, expiry and revocation of an
// access token. It backs the authentication middleware.
func (s *AuthService) ValidateAccessToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, shared.Errorf(shared.ErrUnauthorized, "token has expired")
		}
		return nil, shared.Errorf(shared.ErrUnauthorized, "invalid token")
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if !revoked {
		revoked, err = s.blacklist.IsUserRevoked(ctx, claims.UserID, claims.IssuedAtTime())
		if err != nil {
			return err
		}
	}
	if revoked {
		return shared.Errorf(shared.ErrUnauthorized, "token has been revoked")
	}
	return nil
}

func (s *AuthService) issue(user *identity.User) (*auth.TokenPair, error) {
	tokens, err := s.jwt.GenerateTokenPair(auth.Subject{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
