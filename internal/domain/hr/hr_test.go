package hr

import (
	"testing"
	"time"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDepartment(t *testing.T) {
	d, err := NewDepartment(uuid.New(), " ops ", "Operations")
	require.NoError(t, err)
	assert.Equal(t, "OPS", d.Code)
	assert.True(t, d.IsActive)

	_, err = NewDepartment(uuid.New(), "", "Operations")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestEmployee_Lifecycle(t *testing.T) {
	hired := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	e, err := NewEmployee(uuid.New(), "e-001", "María", "López", hired)
	require.NoError(t, err)
	assert.Equal(t, "María López", e.FullName())
	assert.Equal(t, hired, e.HireDate)

	dept := uuid.New()
	require.NoError(t, e.Assign(&dept, "Warehouse lead", decimal.RequireFromString("18500.00")))
	assert.Equal(t, &dept, e.DepartmentID)

	assert.ErrorIs(t, e.Assign(nil, "", decimal.RequireFromString("-1")), shared.ErrValidation)
	assert.ErrorIs(t, e.SetContact("bad", ""), shared.ErrValidation)
	require.NoError(t, e.SetContact("Maria@Example.com", "555-0100"))
	assert.Equal(t, "maria@example.com", e.Email)

	_, err = NewEmployee(uuid.New(), "E-2", " ", "x", hired)
	assert.ErrorIs(t, err, shared.ErrValidation)
}
