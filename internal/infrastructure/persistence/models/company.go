package models

import (
	"time"

	"github.com/erpsuite/backend/internal/domain/company"
	"github.com/erpsuite/backend/internal/domain/identity"
)

// CompanyModel is the persistence model for the Company tenant root
type CompanyModel struct {
	AggregateModel
	Code     string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(200);not null"`
	TaxID    string `gorm:"type:varchar(50)"`
	Currency string `gorm:"type:char(3);not null"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company
func (m *CompanyModel) ToDomain() *company.Company {
	return &company.Company{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		TaxID:             m.TaxID,
		Currency:          m.Currency,
		IsActive:          m.IsActive,
	}
}

// CompanyModelFromDomain creates a persistence model from a domain Company
func CompanyModelFromDomain(c *company.Company) *CompanyModel {
	m := &CompanyModel{
		Code:     c.Code,
		Name:     c.Name,
		TaxID:    c.TaxID,
		Currency: c.Currency,
		IsActive: c.IsActive,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// UserModel is the persistence model for the User aggregate
type UserModel struct {
	TenantAggregateModel
	Username          string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email             string `gorm:"type:varchar(200);not null;uniqueIndex"`
	FirstName         string `gorm:"type:varchar(100)"`
	LastName          string `gorm:"type:varchar(100)"`
	Phone             string `gorm:"type:varchar(50)"`
	PasswordHash      string `gorm:"type:varchar(255);not null"`
	IsActive          bool   `gorm:"not null;default:true"`
	LastLoginAt       *time.Time
	FailedAttempts    int `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Username:            m.Username,
		Email:               m.Email,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Phone:               m.Phone,
		PasswordHash:        m.PasswordHash,
		IsActive:            m.IsActive,
		LastLoginAt:         m.LastLoginAt,
		FailedAttempts:      m.FailedAttempts,
		LockedUntil:         m.LockedUntil,
		PasswordChangedAt:   m.PasswordChangedAt,
	}
}

// UserModelFromDomain creates a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username:          u.Username,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Phone:             u.Phone,
		PasswordHash:      u.PasswordHash,
		IsActive:          u.IsActive,
		LastLoginAt:       u.LastLoginAt,
		FailedAttempts:    u.FailedAttempts,
		LockedUntil:       u.LockedUntil,
		PasswordChangedAt: u.PasswordChangedAt,
	}
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	return m
}
