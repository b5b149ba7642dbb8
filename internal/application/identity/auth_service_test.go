package identity

import (
	"context"
	"testing"
	"time"

	"github.com/erpsuite/backend/internal/domain/company"
	"github.com/erpsuite/backend/internal/domain/identity"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/auth"
	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmailExcluding(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

type stubTenants struct {
	company *company.Company
	err     error
}

func (s stubTenants) ResolveTenant(context.Context, string) (*company.Company, error) {
	return s.company, s.err
}

type authFixture struct {
	users     *mockUserRepository
	blacklist *auth.InMemoryTokenBlacklist
	jwt       *auth.JWTService
	svc       *AuthService
	tenant    *company.Company
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	tenant, err := company.NewCompany("DEFAULT", "Default Company", "MXN")
	require.NoError(t, err)

	f := &authFixture{
		users:     new(mockUserRepository),
		blacklist: auth.NewInMemoryTokenBlacklist(),
		jwt: auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-with-at-least-32-chars",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "erp-test",
			MaxRefreshCount:        3,
		}),
		tenant: tenant,
	}
	f.svc = NewAuthService(f.users, stubTenants{company: tenant}, f.jwt, f.blacklist,
		AuthServiceConfig{MaxLoginAttempts: 3, LockDuration: 15 * time.Minute}, zap.NewNop())
	return f
}

func (f *authFixture) newUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser(f.tenant.ID, "jdoe", "jdoe@example.com", "secret123")
	require.NoError(t, err)
	return u
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("ExistsByUsername", mock.Anything, "jdoe").Return(false, nil)
	f.users.On("ExistsByEmail", mock.Anything, "jdoe@example.com").Return(false, nil)
	f.users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	result, err := f.svc.Register(context.Background(), RegisterInput{
		Username:        "jdoe",
		Email:           "jdoe@example.com",
		Password:        "secret123",
		PasswordConfirm: "secret123",
		FirstName:       "John",
		LastName:        "Doe",
	})

	require.NoError(t, err)
	assert.Equal(t, f.tenant.ID, result.User.CompanyID)
	assert.Equal(t, "John Doe", result.User.FullName)
	require.NotNil(t, result.Tokens)

	claims, err := f.jwt.ValidateAccessToken(result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), claims.UserID)
	assert.Equal(t, f.tenant.ID.String(), claims.TenantID)
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Username: "jdoe", Email: "jdoe@example.com", Password: "secret123", PasswordConfirm: "secret124",
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = f.svc.Register(context.Background(), RegisterInput{
		Username: "jdoe", Email: "jdoe@example.com", Password: "short", PasswordConfirm: "short",
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("ExistsByUsername", mock.Anything, "jdoe").Return(true, nil)

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Username: "jdoe", Email: "jdoe@example.com", Password: "secret123", PasswordConfirm: "secret123",
	})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	user := f.newUser(t)
	f.users.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)
	f.users.On("Save", mock.Anything, user).Return(nil)

	result, err := f.svc.Login(context.Background(), LoginInput{Username: "jdoe", Password: "secret123"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotNil(t, user.LastLoginAt)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

	_, err := f.svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "secret123"})

	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_Login_LocksAfterRepeatedFailures(t *testing.T) {
	f := newAuthFixture(t)
	user := f.newUser(t)
	f.users.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)
	f.users.On("Save", mock.Anything, user).Return(nil)

	for i := 0; i < 3; i++ {
		_, err := f.svc.Login(context.Background(), LoginInput{Username: "jdoe", Password: "wrong-pass1"})
		require.ErrorIs(t, err, shared.ErrUnauthorized)
	}
	assert.True(t, user.IsLocked())

	_, err := f.svc.Login(context.Background(), LoginInput{Username: "jdoe", Password: "secret123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
}

func TestAuthService_RefreshToken_RotatesPair(t *testing.T) {
	f := newAuthFixture(t)
	user := f.newUser(t)
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := f.jwt.GenerateTokenPair(auth.Subject{TenantID: user.TenantID, UserID: user.ID, Username: user.Username})
	require.NoError(t, err)

	result, err := f.svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)

	_, err = f.svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, shared.ErrUnauthorized, "a consumed refresh token cannot be reused")
}

func TestAuthService_RefreshToken_RejectsGarbage(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: "not-a-token"})

	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	user := f.newUser(t)
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	f.users.On("ExistsByEmailExcluding", mock.Anything, "taken@example.com", user.ID).Return(true, nil)
	f.users.On("ExistsByEmailExcluding", mock.Anything, "new@example.com", user.ID).Return(false, nil)
	f.users.On("Save", mock.Anything, user).Return(nil)

	taken := "taken@example.com"
	_, err := f.svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{Email: &taken})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	email, phone, first := "new@example.com", "+52 55 1234 5678", "Jane"
	profile, err := f.svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{
		Email: &email, Phone: &phone, FirstName: &first,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", profile.Email)
	assert.Equal(t, "Jane", profile.FirstName)
	assert.Equal(t, phone, profile.Phone)
}

func TestAuthService_ChangePassword_RevokesExistingTokens(t *testing.T) {
	f := newAuthFixture(t)
	user := f.newUser(t)
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	f.users.On("Save", mock.Anything, user).Return(nil)

	pair, err := f.jwt.GenerateTokenPair(auth.Subject{TenantID: user.TenantID, UserID: user.ID, Username: user.Username})
	require.NoError(t, err)

	err = f.svc.ChangePassword(context.Background(), user.ID, ChangePasswordInput{
		CurrentPassword: "wrong-pass1", NewPassword: "newsecret1", NewPasswordConfirm: "newsecret1",
	})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)

	err = f.svc.ChangePassword(context.Background(), user.ID, ChangePasswordInput{
		CurrentPassword: "secret123", NewPassword: "newsecret1", NewPasswordConfirm: "other-pass1",
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	err = f.svc.ChangePassword(context.Background(), user.ID, ChangePasswordInput{
		CurrentPassword: "secret123", NewPassword: "newsecret1", NewPasswordConfirm: "newsecret1",
	})
	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("newsecret1"))

	_, err = f.svc.ValidateAccessToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	user := f.newUser(t)
	pair, err := f.jwt.GenerateTokenPair(auth.Subject{TenantID: user.TenantID, UserID: user.ID, Username: user.Username})
	require.NoError(t, err)

	claims, err := f.svc.ValidateAccessToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), LogoutInput{AccessClaims: claims, RefreshToken: pair.RefreshToken}))

	_, err = f.svc.ValidateAccessToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	_, err = f.svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
