package company

import (
	"context"
	"testing"

	"github.com/erpsuite/backend/internal/domain/company"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCompanyRepository struct {
	mock.Mock
}

func (m *mockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *mockCompanyRepository) FindByCode(ctx context.Context, code string) (*company.Company, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *mockCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]company.Company, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *mockCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCompanyRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	return m.Called(ctx, c).Error(0)
}

var testDefaults = config.CompanyConfig{
	DefaultCode:     "DEFAULT",
	DefaultName:     "Default Company",
	DefaultCurrency: "MXN",
}

func newTestService(repo *mockCompanyRepository) *Service {
	return NewService(repo, testDefaults, zap.NewNop())
}

func TestService_Create_UsesDefaultCurrency(t *testing.T) {
	repo := new(mockCompanyRepository)
	repo.On("ExistsByCode", mock.Anything, "acme").Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*company.Company")).Return(nil)

	resp, err := newTestService(repo).Create(context.Background(), CreateCompanyRequest{
		Code:  "acme",
		Name:  "Acme",
		TaxID: "aaa010101aaa",
	})

	require.NoError(t, err)
	assert.Equal(t, "ACME", resp.Code)
	assert.Equal(t, "MXN", resp.Currency)
	assert.Equal(t, "AAA010101AAA", resp.TaxID)
	repo.AssertExpectations(t)
}

func TestService_Create_DuplicateCode(t *testing.T) {
	repo := new(mockCompanyRepository)
	repo.On("ExistsByCode", mock.Anything, "ACME").Return(true, nil)

	_, err := newTestService(repo).Create(context.Background(), CreateCompanyRequest{Code: "ACME", Name: "Acme"})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Update_AppliesOnlyGivenFields(t *testing.T) {
	existing, err := company.NewCompany("ACME", "Acme", "USD")
	require.NoError(t, err)

	repo := new(mockCompanyRepository)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	inactive := false
	resp, err := newTestService(repo).Update(context.Background(), existing.ID, existing.ID, UpdateCompanyRequest{IsActive: &inactive})

	require.NoError(t, err)
	assert.Equal(t, "Acme", resp.Name)
	assert.Equal(t, "USD", resp.Currency)
	assert.False(t, resp.IsActive)
}

func TestService_Update_InvalidCurrency(t *testing.T) {
	existing, err := company.NewCompany("ACME", "Acme", "USD")
	require.NoError(t, err)

	repo := new(mockCompanyRepository)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

	bad := "US"
	_, err = newTestService(repo).Update(context.Background(), existing.ID, existing.ID, UpdateCompanyRequest{Currency: &bad})

	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestService_Update_OtherTenantIsNotFound(t *testing.T) {
	repo := new(mockCompanyRepository)
	name := "pwned"

	_, err := newTestService(repo).Update(context.Background(), uuid.New(), uuid.New(), UpdateCompanyRequest{Name: &name})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.EqualError(t, err, "company not found")
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_GetByID_ScopedToTenant(t *testing.T) {
	own, _ := company.NewCompany("ACME", "Acme", "USD")
	repo := new(mockCompanyRepository)
	repo.On("FindByID", mock.Anything, own.ID).Return(own, nil)
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), own.ID, own.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACME", resp.Code)

	_, err = svc.GetByID(context.Background(), uuid.New(), own.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestService_List_PassesActiveFilter(t *testing.T) {
	repo := new(mockCompanyRepository)
	active := true
	c, _ := company.NewCompany("ACME", "Acme", "USD")
	matchFilter := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["is_active"] == true && f.Filters["id"] == c.ID &&
			f.PageSize == shared.DefaultPageSize && f.Page == 1
	})
	repo.On("FindAll", mock.Anything, matchFilter).Return([]company.Company{*c}, nil)
	repo.On("Count", mock.Anything, matchFilter).Return(int64(1), nil)

	items, total, err := newTestService(repo).List(context.Background(), c.ID, CompanyListFilter{IsActive: &active})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "ACME", items[0].Code)
}

func TestService_EnsureDefault(t *testing.T) {
	t.Run("existing company is reused", func(t *testing.T) {
		existing, _ := company.NewCompany("DEFAULT", "Default Company", "MXN")
		repo := new(mockCompanyRepository)
		repo.On("FindByCode", mock.Anything, "DEFAULT").Return(existing, nil)

		c, err := newTestService(repo).EnsureDefault(context.Background())

		require.NoError(t, err)
		assert.Equal(t, existing.ID, c.ID)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing company is seeded", func(t *testing.T) {
		repo := new(mockCompanyRepository)
		repo.On("FindByCode", mock.Anything, "DEFAULT").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*company.Company")).Return(nil)

		c, err := newTestService(repo).EnsureDefault(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "DEFAULT", c.Code)
		assert.Equal(t, "MXN", c.Currency)
		repo.AssertExpectations(t)
	})
}

func TestService_ResolveTenant(t *testing.T) {
	repo := new(mockCompanyRepository)
	def, _ := company.NewCompany("DEFAULT", "Default Company", "MXN")
	closed, _ := company.NewCompany("CLOSED", "Closed", "MXN")
	closed.SetActive(false)
	repo.On("FindByCode", mock.Anything, "DEFAULT").Return(def, nil)
	repo.On("FindByCode", mock.Anything, "CLOSED").Return(closed, nil)
	repo.On("FindByCode", mock.Anything, "NOPE").Return(nil, shared.ErrNotFound)
	svc := newTestService(repo)

	c, err := svc.ResolveTenant(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, def.ID, c.ID)

	_, err = svc.ResolveTenant(context.Background(), "CLOSED")
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.ResolveTenant(context.Background(), "NOPE")
	assert.ErrorIs(t, err, shared.ErrValidation)
}
