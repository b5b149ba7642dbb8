package handler

import (
	inventoryapp "github.com/erpsuite/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles product categories and brands
type CatalogHandler struct {
	BaseHandler
	catalogService *inventoryapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *inventoryapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateCategory godoc
// @ID           createCategory
// @Summary      Create a category
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateCategoryRequest true "Category"
// @Success      201 {object} APIResponse[inventoryapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req inventoryapp.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.catalogService.CreateCategory(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetCategory godoc
// @ID           getCategoryById
// @Summary      Get a category
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.catalogService.GetCategory(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateCategory godoc
// @ID           updateCategory
// @Summary      Update a category
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id      path string true "Category ID" format(uuid)
// @Param        request body inventoryapp.UpdateCategoryRequest true "Changes"
// @Success      200 {object} APIResponse[inventoryapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/categories/{id} [put]
// @Router       /inventory/categories/{id} [patch]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.catalogService.UpdateCategory(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListCategories godoc
// @ID           listCategories
// @Summary      List categories
// @Tags         inventory
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        is_active query bool   false "Filter by active flag"
// @Param        parent_id query string false "Filter by parent category" format(uuid)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]inventoryapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter inventoryapp.CatalogListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.catalogService.ListCategories(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// CreateBrand godoc
// @ID           createBrand
// @Summary      Create a brand
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateBrandRequest true "Brand"
// @Success      201 {object} APIResponse[inventoryapp.BrandResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/brands [post]
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req inventoryapp.CreateBrandRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.catalogService.CreateBrand(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetBrand godoc
// @ID           getBrandById
// @Summary      Get a brand
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Brand ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.BrandResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/brands/{id} [get]
func (h *CatalogHandler) GetBrand(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.catalogService.GetBrand(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateBrand godoc
// @ID           updateBrand
// @Summary      Update a brand
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id      path string true "Brand ID" format(uuid)
// @Param        request body inventoryapp.UpdateBrandRequest true "Changes"
// @Success      200 {object} APIResponse[inventoryapp.BrandResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/brands/{id} [put]
// @Router       /inventory/brands/{id} [patch]
func (h *CatalogHandler) UpdateBrand(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateBrandRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.catalogService.UpdateBrand(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListBrands godoc
// @ID           listBrands
// @Summary      List brands
// @Tags         inventory
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        is_active query bool   false "Filter by active flag"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]inventoryapp.BrandResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/brands [get]
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter inventoryapp.CatalogListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.catalogService.ListBrands(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}
