package handler

import (
	purchasingapp "github.com/erpsuite/backend/internal/application/purchasing"
	"github.com/gin-gonic/gin"
)

// SupplierHandler handles supplier categories and suppliers
type SupplierHandler struct {
	BaseHandler
	supplierService *purchasingapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *purchasingapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// CreateCategory godoc
// @ID           createSupplierCategory
// @Summary      Create a supplier category
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        request body purchasingapp.CreateSupplierCategoryRequest true "Supplier Category"
// @Success      201 {object} APIResponse[purchasingapp.SupplierCategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/supplier-categories [post]
func (h *SupplierHandler) CreateCategory(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req purchasingapp.CreateSupplierCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.supplierService.CreateCategory(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetCategory godoc
// @ID           getSupplierCategoryById
// @Summary      Get a supplier category
// @Tags         purchasing
// @Produce      json
// @Param        id path string true "Supplier Category ID" format(uuid)
// @Success      200 {object} APIResponse[purchasingapp.SupplierCategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/supplier-categories/{id} [get]
func (h *SupplierHandler) GetCategory(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.supplierService.GetCategory(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateCategory godoc
// @ID           updateSupplierCategory
// @Summary      Update a supplier category
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        id      path string true "Supplier Category ID" format(uuid)
// @Param        request body purchasingapp.UpdateSupplierCategoryRequest true "Changes"
// @Success      200 {object} APIResponse[purchasingapp.SupplierCategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/supplier-categories/{id} [put]
// @Router       /purchasing/supplier-categories/{id} [patch]
func (h *SupplierHandler) UpdateCategory(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req purchasingapp.UpdateSupplierCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.supplierService.UpdateCategory(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListCategories godoc
// @ID           listSupplierCategories
// @Summary      List supplier categories
// @Tags         purchasing
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        is_active query bool   false "Filter by active flag"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]purchasingapp.SupplierCategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/supplier-categories [get]
func (h *SupplierHandler) ListCategories(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter purchasingapp.SupplierCategoryListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.supplierService.ListCategories(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Create godoc
// @ID           createSupplier
// @Summary      Create a supplier
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        request body purchasingapp.CreateSupplierRequest true "Supplier"
// @Success      201 {object} APIResponse[purchasingapp.SupplierResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req purchasingapp.CreateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.supplierService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetByID godoc
// @ID           getSupplierById
// @Summary      Get a supplier
// @Tags         purchasing
// @Produce      json
// @Param        id path string true "Supplier ID" format(uuid)
// @Success      200 {object} APIResponse[purchasingapp.SupplierResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.supplierService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update godoc
// @ID           updateSupplier
// @Summary      Update a supplier
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        id      path string true "Supplier ID" format(uuid)
// @Param        request body purchasingapp.UpdateSupplierRequest true "Changes"
// @Success      200 {object} APIResponse[purchasingapp.SupplierResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/suppliers/{id} [put]
// @Router       /purchasing/suppliers/{id} [patch]
func (h *SupplierHandler) Update(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req purchasingapp.UpdateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.supplierService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List godoc
// @ID           listSuppliers
// @Summary      List suppliers
// @Tags         purchasing
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        category_id query string false "Filter by category" format(uuid)
// @Param        is_active   query bool   false "Filter by active flag"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]purchasingapp.SupplierResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchasing/suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter purchasingapp.SupplierListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.supplierService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}
