// Package finance implements invoicing of sales orders.
package finance

import (
	"context"
	"errors"
	"time"

	"github.com/erpsuite/backend/internal/application/common"
	"github.com/erpsuite/backend/internal/domain/company"
	"github.com/erpsuite/backend/internal/domain/finance"
	"github.com/erpsuite/backend/internal/domain/sales"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/erpsuite/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService bills sales orders
type InvoiceService struct {
	invoices  finance.InvoiceRepository
	orders    sales.SalesOrderRepository
	customers sales.CustomerRepository
	groups    sales.CustomerGroupRepository
	companies company.Repository
	cfg       config.DocumentsConfig
	logger    *zap.Logger
	now       func() time.Time
}

// InvoiceServiceDeps groups the collaborators of InvoiceService
type InvoiceServiceDeps struct {
	Invoices  finance.InvoiceRepository
	Orders    sales.SalesOrderRepository
	Customers sales.CustomerRepository
	Groups    sales.CustomerGroupRepository
	Companies company.Repository
	Config    config.DocumentsConfig
	Logger    *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(deps InvoiceServiceDeps) *InvoiceService {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &InvoiceService{
		invoices:  deps.Invoices,
		orders:    deps.Orders,
		customers: deps.Customers,
		groups:    deps.Groups,
		companies: deps.Companies,
		cfg:       deps.Config,
		logger:    log,
		now:       time.Now,
	}
}

// CreateFromSalesOrder creates a draft invoice numbered INV-YYYY-NNNNN.
// Amounts and lines are copied from the order; the currency is the
// company's and the due date follows the customer group's payment terms,
// or the configured default when the customer has no group.
func (s *InvoiceService) CreateFromSalesOrder(ctx context.Context, tenantID, userID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, tenantID, req.SalesOrderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.Errorf(shared.ErrValidation, "sales_order_id %s does not exist", req.SalesOrderID)
		}
		return nil, err
	}
	tenant, err := s.companies.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	terms, err := s.paymentTerms(ctx, tenantID, order.CustomerID)
	if err != nil {
		return nil, err
	}

	issueDate := s.now()
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	var invoice *finance.Invoice
	err = common.SaveNumbered(ctx,
		func(ctx context.Context) (string, error) { return s.invoices.GenerateNumber(ctx, tenantID) },
		func(number string) error {
			if invoice == nil {
				inv, err := finance.NewInvoiceFromSalesOrder(number, order, tenant.Currency, issueDate, terms)
				if err != nil {
					return err
				}
				inv.SetNotes(req.Notes)
				inv.SetCreatedBy(userID)
				invoice = inv
			}
			invoice.Number = number
			return s.invoices.Save(ctx, invoice)
		})
	if err != nil {
		return nil, err
	}

	logger.FromContextOr(ctx, s.logger).Info("invoice created",
		zap.String("invoice_number", invoice.Number),
		zap.String("sales_order_number", order.Number),
		zap.String("total", invoice.Total.String()),
		zap.String("currency", invoice.Currency))

	resp := ToInvoiceResponse(invoice, s.now())
	return &resp, nil
}

// GetByID returns one invoice with its lines
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice, s.now())
	return &resp, nil
}

// SetStatus assigns any known status
func (s *InvoiceService) SetStatus(ctx context.Context, tenantID, id uuid.UUID, req SetStatusRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.SetStatus(finance.InvoiceStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice, s.now())
	return &resp, nil
}

// List returns a page of invoices
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	f := filter.Filter()
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.CustomerID != nil {
		f.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.SalesOrderID != nil {
		f.Filters["sales_order_id"] = *filter.SalesOrderID
	}
	invoices, err := s.invoices.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoices.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i], now)
	}
	return out, total, nil
}

func (s *InvoiceService) paymentTerms(ctx context.Context, tenantID, customerID uuid.UUID) (int, error) {
	customer, err := s.customers.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return 0, err
	}
	if customer.GroupID == nil {
		return s.cfg.DefaultPaymentTermsDays, nil
	}
	group, err := s.groups.FindByIDForTenant(ctx, tenantID, *customer.GroupID)
	if errors.Is(err, shared.ErrNotFound) {
		return s.cfg.DefaultPaymentTermsDays, nil
	}
	if err != nil {
		return 0, err
	}
	return group.PaymentTermsDays, nil
}
