// Package finance holds customer invoices billed from sales orders.
package finance

import (
	"strings"
	"time"

	"github.com/erpsuite/backend/internal/domain/sales"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle label of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// InvoiceLine is one billed line, copied from a sales order line
type InvoiceLine struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	LineNumber  int
	ProductID   uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	TaxAmount   decimal.Decimal
	Total       decimal.Decimal
}

// Invoice bills a customer for a sales order
type Invoice struct {
	shared.TenantAggregateRoot
	Number         string
	SalesOrderID   uuid.UUID
	CustomerID     uuid.UUID
	IssueDate      time.Time
	DueDate        time.Time
	Status         InvoiceStatus
	Currency       string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	Notes          string
	Lines          []InvoiceLine
}

// NewInvoiceFromSalesOrder creates a draft invoice for order. Amounts and
// lines are copied without recomputation. The due date is issueDate plus
// paymentTermsDays.
func NewInvoiceFromSalesOrder(number string, order *sales.SalesOrder, currency string, issueDate time.Time, paymentTermsDays int) (*Invoice, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.Errorf(shared.ErrValidation, "invoice number is required")
	}
	if order == nil {
		return nil, shared.Errorf(shared.ErrValidation, "sales_order_id is required")
	}
	if order.Status == sales.SalesOrderStatusCancelled {
		return nil, shared.Errorf(shared.ErrInvalidState, "cannot invoice a cancelled sales order")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return nil, shared.Errorf(shared.ErrValidation, "currency must be a 3-letter ISO 4217 code")
	}
	if paymentTermsDays < 0 {
		return nil, shared.Errorf(shared.ErrValidation, "payment terms cannot be negative")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(order.TenantID),
		Number:              number,
		SalesOrderID:        order.ID,
		CustomerID:          order.CustomerID,
		IssueDate:           issueDate,
		DueDate:             issueDate.AddDate(0, 0, paymentTermsDays),
		Status:              InvoiceStatusDraft,
		Currency:            currency,
		Subtotal:            order.Subtotal,
		DiscountAmount:      order.DiscountAmount,
		TaxAmount:           order.TaxAmount,
		Total:               order.Total,
	}
	inv.Lines = make([]InvoiceLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		inv.Lines = append(inv.Lines, InvoiceLine{
			ID:          uuid.New(),
			InvoiceID:   inv.ID,
			LineNumber:  l.LineNumber,
			ProductID:   l.ProductID,
			Description: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			TaxAmount:   l.TaxAmount,
			Total:       l.Total,
		})
	}
	return inv, nil
}

// SetNotes sets free-form notes
func (i *Invoice) SetNotes(notes string) {
	i.Notes = strings.TrimSpace(notes)
	i.IncrementVersion()
}

// SetStatus assigns any known status
func (i *Invoice) SetStatus(status InvoiceStatus) error {
	status = InvoiceStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.IsValid() {
		return shared.Errorf(shared.ErrValidation, "unknown invoice status %q", status)
	}
	i.Status = status
	i.IncrementVersion()
	return nil
}

// IsOverdue reports whether an issued invoice is past its due date at now
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Status == InvoiceStatusIssued && now.After(i.DueDate)
}
