package handler

import (
	financeapp "github.com/erpsuite/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *financeapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *financeapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateFromSalesOrder godoc
// @ID           createInvoice
// @Summary      Invoice a sales order
// @Description  Copies the totals and lines of the sales order into a draft invoice
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateInvoiceRequest true "Invoice"
// @Success      201 {object} APIResponse[financeapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /finance/invoices [post]
func (h *InvoiceHandler) CreateFromSalesOrder(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req financeapp.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.invoiceService.CreateFromSalesOrder(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetByID godoc
// @ID           getInvoiceById
// @Summary      Get an invoice
// @Tags         finance
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /finance/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.invoiceService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List godoc
// @ID           listInvoices
// @Summary      List invoices
// @Tags         finance
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        status         query string false "Filter by status" Enums(draft, issued, paid, cancelled)
// @Param        customer_id    query string false "Filter by customer" format(uuid)
// @Param        sales_order_id query string false "Filter by sales order" format(uuid)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]financeapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /finance/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter financeapp.InvoiceListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.invoiceService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// SetStatus godoc
// @ID           setInvoiceStatus
// @Summary      Set the status of an invoice
// @Description  Assigns any known status; no transition rules apply
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id      path string true "Invoice ID" format(uuid)
// @Param        request body financeapp.SetStatusRequest true "New status (draft, issued, paid, cancelled)"
// @Success      200 {object} APIResponse[financeapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/status [post]
// @Router       /finance/invoices/{id}/status [patch]
func (h *InvoiceHandler) SetStatus(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.SetStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.invoiceService.SetStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
