package handler

import (
	purchasingapp "github.com/erpsuite/backend/internal/application/purchasing"
	"github.com/gin-gonic/gin"
)

// PurchaseOrderHandler handles purchase order endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *purchasingapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orderService *purchasingapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// Create godoc
// @ID           createPurchaseOrder
// @Summary      Create a purchase order
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        request body purchasingapp.CreatePurchaseOrderRequest true "Purchase Order"
// @Success      201 {object} APIResponse[purchasingapp.PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/orders [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req purchasingapp.CreatePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.orderService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetByID godoc
// @ID           getPurchaseOrderById
// @Summary      Get a purchase order
// @Tags         purchasing
// @Produce      json
// @Param        id path string true "Purchase Order ID" format(uuid)
// @Success      200 {object} APIResponse[purchasingapp.PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.orderService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update godoc
// @ID           updatePurchaseOrder
// @Summary      Update a purchase order
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        id      path string true "Purchase Order ID" format(uuid)
// @Param        request body purchasingapp.UpdatePurchaseOrderRequest true "Changes"
// @Success      200 {object} APIResponse[purchasingapp.PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/orders/{id} [put]
// @Router       /purchasing/orders/{id} [patch]
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req purchasingapp.UpdatePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.orderService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List godoc
// @ID           listPurchaseOrders
// @Summary      List purchase orders
// @Tags         purchasing
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        status      query string false "Filter by status"
// @Param        supplier_id query string false "Filter by supplier" format(uuid)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]purchasingapp.PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/orders [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter purchasingapp.PurchaseOrderListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.orderService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// SetStatus godoc
// @ID           setPurchaseOrderStatus
// @Summary      Set the status of a purchase order
// @Description  Assigns any known status; no transition rules apply
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        id      path string true "Purchase Order ID" format(uuid)
// @Param        request body purchasingapp.SetStatusRequest true "New status (draft, sent, confirmed, partially_received, received, cancelled)"
// @Success      200 {object} APIResponse[purchasingapp.PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/orders/{id}/status [post]
// @Router       /purchasing/orders/{id}/status [patch]
func (h *PurchaseOrderHandler) SetStatus(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req purchasingapp.SetStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.orderService.SetStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
