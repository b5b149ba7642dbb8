package models

import (
	"time"

	"github.com/erpsuite/backend/internal/domain/hr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepartmentModel is the persistence model for departments
type DepartmentModel struct {
	TenantAggregateModel
	Code        string     `gorm:"type:varchar(50);not null;index"`
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	ManagerID   *uuid.UUID `gorm:"type:uuid"`
	IsActive    bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts the persistence model to a domain Department
func (m *DepartmentModel) ToDomain() *hr.Department {
	return &hr.Department{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Description:         m.Description,
		ManagerID:           m.ManagerID,
		IsActive:            m.IsActive,
	}
}

// DepartmentModelFromDomain creates a persistence model from a domain Department
func DepartmentModelFromDomain(d *hr.Department) *DepartmentModel {
	m := &DepartmentModel{
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		ManagerID:   d.ManagerID,
		IsActive:    d.IsActive,
	}
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	return m
}

// EmployeeModel is the persistence model for employees
type EmployeeModel struct {
	TenantAggregateModel
	Code         string          `gorm:"type:varchar(50);not null;index"`
	FirstName    string          `gorm:"type:varchar(100);not null"`
	LastName     string          `gorm:"type:varchar(100)"`
	Email        string          `gorm:"type:varchar(200)"`
	Phone        string          `gorm:"type:varchar(50)"`
	DepartmentID *uuid.UUID      `gorm:"type:uuid;index"`
	Position     string          `gorm:"type:varchar(100)"`
	HireDate     time.Time       `gorm:"not null"`
	Salary       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UserID       *uuid.UUID      `gorm:"type:uuid"`
	IsActive     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee
func (m *EmployeeModel) ToDomain() *hr.Employee {
	return &hr.Employee{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Code:                m.Code,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Email:               m.Email,
		Phone:               m.Phone,
		DepartmentID:        m.DepartmentID,
		Position:            m.Position,
		HireDate:            m.HireDate,
		Salary:              m.Salary,
		UserID:              m.UserID,
		IsActive:            m.IsActive,
	}
}

// EmployeeModelFromDomain creates a persistence model from a domain Employee
func EmployeeModelFromDomain(e *hr.Employee) *EmployeeModel {
	m := &EmployeeModel{
		Code:         e.Code,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		DepartmentID: e.DepartmentID,
		Position:     e.Position,
		HireDate:     e.HireDate,
		Salary:       e.Salary,
		UserID:       e.UserID,
		IsActive:     e.IsActive,
	}
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	return m
}
