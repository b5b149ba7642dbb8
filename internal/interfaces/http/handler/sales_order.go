package handler

import (
	salesapp "github.com/erpsuite/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
)

// SalesOrderHandler handles sales order endpoints
type SalesOrderHandler struct {
	BaseHandler
	orderService *salesapp.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orderService *salesapp.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orderService: orderService}
}

// Create godoc
// @ID           createSalesOrder
// @Summary      Create a sales order
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateSalesOrderRequest true "Sales Order"
// @Success      201 {object} APIResponse[salesapp.SalesOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/orders [post]
func (h *SalesOrderHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req salesapp.CreateSalesOrderRequest
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
// @ID           getSalesOrderById
// @Summary      Get a sales order
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} APIResponse[salesapp.SalesOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/orders/{id} [get]
func (h *SalesOrderHandler) GetByID(c *gin.Context) {
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
// @ID           updateSalesOrder
// @Summary      Update a sales order
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id      path string true "Sales Order ID" format(uuid)
// @Param        request body salesapp.UpdateSalesOrderRequest true "Changes"
// @Success      200 {object} APIResponse[salesapp.SalesOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/orders/{id} [put]
// @Router       /sales/orders/{id} [patch]
func (h *SalesOrderHandler) Update(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req salesapp.UpdateSalesOrderRequest
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
// @ID           listSalesOrders
// @Summary      List sales orders
// @Tags         sales
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        status      query string false "Filter by status" Enums(draft, confirmed, cancelled)
// @Param        customer_id query string false "Filter by customer" format(uuid)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]salesapp.SalesOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/orders [get]
func (h *SalesOrderHandler) List(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter salesapp.SalesOrderListFilter
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
// @ID           setSalesOrderStatus
// @Summary      Set the status of a sales order
// @Description  Assigns any known status; no transition rules apply
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id      path string true "Sales Order ID" format(uuid)
// @Param        request body salesapp.SetStatusRequest true "New status (draft, confirmed, cancelled)"
// @Success      200 {object} APIResponse[salesapp.SalesOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/orders/{id}/status [post]
// @Router       /sales/orders/{id}/status [patch]
func (h *SalesOrderHandler) SetStatus(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req salesapp.SetStatusRequest
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
