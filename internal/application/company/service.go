// Package company provides the use cases of the tenant root record.
package company

import (
	"context"
	"errors"
	"strings"

	"github.com/erpsuite/backend/internal/domain/company"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles company operations
type Service struct {
	repo     company.Repository
	defaults config.CompanyConfig
	logger   *zap.Logger
}

// NewService creates a company service. defaults names the company seeded
// by EnsureDefault and the currency used when a request omits one.
func NewService(repo company.Repository, defaults config.CompanyConfig, logger *zap.Logger) *Service {
	return &Service{repo: repo, defaults: defaults, logger: logger}
}

// Create creates a company with a unique code. It is the onboarding path
// for new tenants: users register into the company afterwards by code, and
// the caller gets no access to it through its own token.
func (s *Service) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	exists, err := s.repo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "company with code %s already exists", strings.ToUpper(req.Code))
	}

	currency := req.Currency
	if currency == "" {
		currency = s.defaults.DefaultCurrency
	}
	c, err := company.NewCompany(req.Code, req.Name, currency)
	if err != nil {
		return nil, err
	}
	if req.TaxID != "" {
		c.SetTaxID(req.TaxID)
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("company created", zap.String("company_id", c.ID.String()), zap.String("code", c.Code))
	resp := ToCompanyResponse(c)
	return &resp, nil
}

// GetByID returns the caller's company. Any other id reads as not found.
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CompanyResponse, error) {
	c, err := s.findOwn(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(c)
	return &resp, nil
}

// Update applies the non-nil fields of req to the caller's company
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	c, err := s.findOwn(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := c.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.TaxID != nil {
		c.SetTaxID(*req.TaxID)
	}
	if req.Currency != nil {
		if err := c.SetCurrency(*req.Currency); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		c.SetActive(*req.IsActive)
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(c)
	return &resp, nil
}

// List returns the companies visible to the caller, which is at most its
// own, and the total match count
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter CompanyListFilter) ([]CompanyResponse, int64, error) {
	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  map[string]any{"id": tenantID},
	}.Normalize()
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}

	companies, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CompanyResponse, len(companies))
	for i := range companies {
		out[i] = ToCompanyResponse(&companies[i])
	}
	return out, total, nil
}

func (s *Service) findOwn(ctx context.Context, tenantID, id uuid.UUID) (*company.Company, error) {
	if id != tenantID {
		return nil, shared.Errorf(shared.ErrNotFound, "company not found")
	}
	return s.repo.FindByID(ctx, id)
}

// EnsureDefault returns the configured default company, creating it on
// first start
func (s *Service) EnsureDefault(ctx context.Context) (*company.Company, error) {
	c, err := s.repo.FindByCode(ctx, s.defaults.DefaultCode)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	c, err = company.NewCompany(s.defaults.DefaultCode, s.defaults.DefaultName, s.defaults.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		// another instance may have seeded it concurrently
		if errors.Is(err, shared.ErrAlreadyExists) {
			return s.repo.FindByCode(ctx, s.defaults.DefaultCode)
		}
		return nil, err
	}
	s.logger.Info("default company seeded", zap.String("code", c.Code), zap.String("company_id", c.ID.String()))
	return c, nil
}

// ResolveTenant returns the company for code, or the default company when
// code is empty. Inactive companies are rejected.
func (s *Service) ResolveTenant(ctx context.Context, code string) (*company.Company, error) {
	if strings.TrimSpace(code) == "" {
		code = s.defaults.DefaultCode
	}
	c, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.Errorf(shared.ErrValidation, "unknown company code %s", strings.ToUpper(code))
		}
		return nil, err
	}
	if !c.IsActive {
		return nil, shared.Errorf(shared.ErrValidation, "company %s is inactive", c.Code)
	}
	return c, nil
}
