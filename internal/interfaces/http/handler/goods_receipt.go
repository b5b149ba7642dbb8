package handler

import (
	purchasingapp "github.com/erpsuite/backend/internal/application/purchasing"
	"github.com/gin-gonic/gin"
)

// GoodsReceiptHandler handles goods receipt endpoints
type GoodsReceiptHandler struct {
	BaseHandler
	receiptService *purchasingapp.GoodsReceiptService
}

// NewGoodsReceiptHandler creates a new GoodsReceiptHandler
func NewGoodsReceiptHandler(receiptService *purchasingapp.GoodsReceiptService) *GoodsReceiptHandler {
	return &GoodsReceiptHandler{receiptService: receiptService}
}

// Create godoc
// @ID           createGoodsReceipt
// @Summary      Create a goods receipt
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        request body purchasingapp.CreateGoodsReceiptRequest true "Goods Receipt"
// @Success      201 {object} APIResponse[purchasingapp.GoodsReceiptResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/receipts [post]
func (h *GoodsReceiptHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req purchasingapp.CreateGoodsReceiptRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.receiptService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetByID godoc
// @ID           getGoodsReceiptById
// @Summary      Get a goods receipt
// @Tags         purchasing
// @Produce      json
// @Param        id path string true "Goods Receipt ID" format(uuid)
// @Success      200 {object} APIResponse[purchasingapp.GoodsReceiptResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/receipts/{id} [get]
func (h *GoodsReceiptHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.receiptService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List godoc
// @ID           listGoodsReceipts
// @Summary      List goods receipts
// @Tags         purchasing
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        purchase_order_id query string false "Filter by purchase order" format(uuid)
// @Param        status            query string false "Filter by status" Enums(pending, completed)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]purchasingapp.GoodsReceiptResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/receipts [get]
func (h *GoodsReceiptHandler) List(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter purchasingapp.GoodsReceiptListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.receiptService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Complete godoc
// @ID           completeGoodsReceipt
// @Summary      Complete a goods receipt
// @Description  Marks the receipt completed, updates the purchase order and posts IN transactions in one database transaction
// @Tags         purchasing
// @Produce      json
// @Param        id path string true "Goods receipt ID" format(uuid)
// @Success      200 {object} APIResponse[purchasingapp.GoodsReceiptResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/receipts/{id}/complete [post]
func (h *GoodsReceiptHandler) Complete(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	receipt, err := h.receiptService.Complete(c.Request.Context(), tenantID, userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}
