package handler

import (
	salesapp "github.com/erpsuite/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer groups and customers
type CustomerHandler struct {
	BaseHandler
	customerService *salesapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *salesapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateGroup godoc
// @ID           createCustomerGroup
// @Summary      Create a customer group
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateCustomerGroupRequest true "Customer Group"
// @Success      201 {object} APIResponse[salesapp.CustomerGroupResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/customer-groups [post]
func (h *CustomerHandler) CreateGroup(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req salesapp.CreateCustomerGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.customerService.CreateGroup(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetGroup godoc
// @ID           getCustomerGroupById
// @Summary      Get a customer group
// @Tags         sales
// @Produce      json
// @Param        id path string true "Customer Group ID" format(uuid)
// @Success      200 {object} APIResponse[salesapp.CustomerGroupResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/customer-groups/{id} [get]
func (h *CustomerHandler) GetGroup(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.customerService.GetGroup(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateGroup godoc
// @ID           updateCustomerGroup
// @Summary      Update a customer group
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id      path string true "Customer Group ID" format(uuid)
// @Param        request body salesapp.UpdateCustomerGroupRequest true "Changes"
// @Success      200 {object} APIResponse[salesapp.CustomerGroupResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/customer-groups/{id} [put]
// @Router       /sales/customer-groups/{id} [patch]
func (h *CustomerHandler) UpdateGroup(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req salesapp.UpdateCustomerGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.customerService.UpdateGroup(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListGroups godoc
// @ID           listCustomerGroups
// @Summary      List customer groups
// @Tags         sales
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        is_active query bool   false "Filter by active flag"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]salesapp.CustomerGroupResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/customer-groups [get]
func (h *CustomerHandler) ListGroups(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter salesapp.CustomerGroupListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.customerService.ListGroups(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Create godoc
// @ID           createCustomer
// @Summary      Create a customer
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateCustomerRequest true "Customer"
// @Success      201 {object} APIResponse[salesapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req salesapp.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.customerService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetByID godoc
// @ID           getCustomerById
// @Summary      Get a customer
// @Tags         sales
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[salesapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.customerService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id      path string true "Customer ID" format(uuid)
// @Param        request body salesapp.UpdateCustomerRequest true "Changes"
// @Success      200 {object} APIResponse[salesapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/customers/{id} [put]
// @Router       /sales/customers/{id} [patch]
func (h *CustomerHandler) Update(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req salesapp.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.customerService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Tags         sales
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        group_id  query string false "Filter by customer group" format(uuid)
// @Param        is_active query bool   false "Filter by active flag"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]salesapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter salesapp.CustomerListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.customerService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}
