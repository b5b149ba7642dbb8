package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := Errorf(ErrNotFound, "product %s not found", "abc")
	wrapped := fmt.Errorf("lookup: %w", err)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrAlreadyExists))
	assert.Equal(t, "product abc not found", err.Error())
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{Page: 0, PageSize: 500}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPageSize, f.PageSize)
	assert.NotNil(t, f.Filters)

	f = Filter{Page: 3, PageSize: 0}.Normalize()
	assert.Equal(t, DefaultPageSize, f.PageSize)
	assert.Equal(t, 40, f.Offset())
}

func TestNewPaginated_TotalPages(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 41, 1, 20)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPaginated([]int{}, 0, 1, 20)
	assert.Equal(t, 0, p.TotalPages)
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.RequireFromString("200.00"), decimal.RequireFromString("16"))
	assert.True(t, got.Equal(decimal.RequireFromString("32")))

	got = Percent(decimal.RequireFromString("10.01"), decimal.RequireFromString("16"))
	assert.True(t, got.Equal(decimal.RequireFromString("1.6016")))
}

func TestRequireNonNegative(t *testing.T) {
	assert.NoError(t, RequireNonNegative("price", decimal.Zero))
	err := RequireNonNegative("price", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, RequirePositive("quantity", decimal.Zero), ErrValidation)
}

func TestRequireScale(t *testing.T) {
	for _, ok := range []string{"0", "1.5", "0.0001", "12.34560000", "99999999999999.9999"} {
		assert.NoError(t, RequireScale("quantity", decimal.RequireFromString(ok)), ok)
	}

	err := RequirePositive("quantity", decimal.RequireFromString("0.00001"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "quantity cannot have more than 4 decimal places")

	assert.ErrorIs(t, RequireNonNegative("unit_price", decimal.RequireFromString("1.23456789")), ErrValidation)
}
