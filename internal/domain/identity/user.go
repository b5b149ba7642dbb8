// Package identity contains the user aggregate used for authentication.
package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	hasLetter       = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit        = regexp.MustCompile(`[0-9]`)
)

// ErrInvalidCredentials is returned for unknown users and wrong passwords alike
var ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")

// User is an account belonging to one company tenant
type User struct {
	shared.TenantAggregateRoot
	Username          string
	Email             string
	FirstName         string
	LastName          string
	Phone             string
	PasswordHash      string
	IsActive          bool
	LastLoginAt       *time.Time
	FailedAttempts    int
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// NewUser creates an active user with a hashed password
func NewUser(tenantID uuid.UUID, username, email, password string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	u := &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Username:            username,
		IsActive:            true,
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// FullName joins first and last name, falling back to the username
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// SetEmail validates and normalizes the email address
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(email) > 200 || !emailPattern.MatchString(email) {
		return shared.Errorf(shared.ErrValidation, "invalid email address")
	}
	u.Email = email
	u.IncrementVersion()
	return nil
}

// SetName sets first and last name
func (u *User) SetName(first, last string) error {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if len(first) > 100 || len(last) > 100 {
		return shared.Errorf(shared.ErrValidation, "names cannot exceed 100 characters")
	}
	u.FirstName, u.LastName = first, last
	u.IncrementVersion()
	return nil
}

// SetPhone sets the contact phone
func (u *User) SetPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if len(phone) > 50 {
		return shared.Errorf(shared.ErrValidation, "phone cannot exceed 50 characters")
	}
	u.Phone = phone
	u.IncrementVersion()
	return nil
}

// SetPassword replaces the password hash after applying the password policy
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	now := time.Now()
	u.PasswordHash = string(hash)
	u.PasswordChangedAt = &now
	u.IncrementVersion()
	return nil
}

// ChangePassword verifies the current password before setting the new one
func (u *User) ChangePassword(current, next string) error {
	if !u.VerifyPassword(current) {
		return shared.Errorf(shared.ErrUnauthorized, "current password is incorrect")
	}
	return u.SetPassword(next)
}

// VerifyPassword reports whether password matches the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsLocked reports whether a lockout is currently in effect
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && time.Now().Before(*u.LockedUntil)
}

// CanLogin reports whether the account may authenticate right now
func (u *User) CanLogin() bool {
	return u.IsActive && !u.IsLocked()
}

// RecordLoginSuccess resets the failure counter and stamps the login time
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.IncrementVersion()
}

// RecordLoginFailure counts a failed attempt and locks the account for
// lockDuration once maxAttempts is reached. Returns true when locked.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.IncrementVersion()
	if maxAttempts > 0 && u.FailedAttempts >= maxAttempts {
		until := time.Now().Add(lockDuration)
		u.LockedUntil = &until
		u.FailedAttempts = 0
		return true
	}
	return false
}

// SetActive toggles the soft-active flag
func (u *User) SetActive(active bool) {
	u.IsActive = active
	u.IncrementVersion()
}

func validateUsername(username string) error {
	if len(username) < 3 || len(username) > 100 {
		return shared.Errorf(shared.ErrValidation, "username must be 3-100 characters")
	}
	if !usernamePattern.MatchString(username) {
		return shared.Errorf(shared.ErrValidation, "username can only contain letters, numbers, underscores, hyphens and dots")
	}
	return nil
}

// ValidatePassword applies the password policy without hashing
func ValidatePassword(password string) error {
	return validatePassword(password)
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.Errorf(shared.ErrValidation, "password must be at least 8 characters")
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return shared.Errorf(shared.ErrValidation, "password cannot exceed 72 characters")
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return shared.Errorf(shared.ErrValidation, "password must contain at least one letter and one number")
	}
	return nil
}
