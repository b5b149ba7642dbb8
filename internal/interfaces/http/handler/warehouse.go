package handler

import (
	inventoryapp "github.com/erpsuite/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// WarehouseHandler handles warehouses and their locations
type WarehouseHandler struct {
	BaseHandler
	warehouseService *inventoryapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *inventoryapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// Create godoc
// @ID           createWarehouse
// @Summary      Create a warehouse
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateWarehouseRequest true "Warehouse"
// @Success      201 {object} APIResponse[inventoryapp.WarehouseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/warehouses [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req inventoryapp.CreateWarehouseRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.warehouseService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetByID godoc
// @ID           getWarehouseById
// @Summary      Get a warehouse
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.WarehouseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.warehouseService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update godoc
// @ID           updateWarehouse
// @Summary      Update a warehouse
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id      path string true "Warehouse ID" format(uuid)
// @Param        request body inventoryapp.UpdateWarehouseRequest true "Changes"
// @Success      200 {object} APIResponse[inventoryapp.WarehouseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id} [put]
// @Router       /inventory/warehouses/{id} [patch]
func (h *WarehouseHandler) Update(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateWarehouseRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.warehouseService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List godoc
// @ID           listWarehouses
// @Summary      List warehouses
// @Tags         inventory
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        is_active query bool   false "Filter by active flag"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]inventoryapp.WarehouseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter inventoryapp.WarehouseListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.warehouseService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// CreateLocation godoc
// @ID           createWarehouseLocation
// @Summary      Create a location in a warehouse
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id      path string                             true "Warehouse ID" format(uuid)
// @Param        request body inventoryapp.CreateLocationRequest true "Location"
// @Success      201 {object} APIResponse[inventoryapp.LocationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id}/locations [post]
func (h *WarehouseHandler) CreateLocation(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	warehouseID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.CreateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	location, err := h.warehouseService.CreateLocation(c.Request.Context(), tenantID, userID, warehouseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, location)
}

// GetLocation godoc
// @ID           getWarehouseLocationById
// @Summary      Get a warehouse location
// @Tags         inventory
// @Produce      json
// @Param        id          path string true "Warehouse ID" format(uuid)
// @Param        location_id path string true "Location ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.LocationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id}/locations/{location_id} [get]
func (h *WarehouseHandler) GetLocation(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	warehouseID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	id, ok := h.PathID(c, "location_id")
	if !ok {
		return
	}
	location, err := h.warehouseService.GetLocation(c.Request.Context(), tenantID, warehouseID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// UpdateLocation godoc
// @ID           updateWarehouseLocation
// @Summary      Update a warehouse location
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id          path string                             true "Warehouse ID" format(uuid)
// @Param        location_id path string                             true "Location ID" format(uuid)
// @Param        request     body inventoryapp.UpdateLocationRequest true "Changes"
// @Success      200 {object} APIResponse[inventoryapp.LocationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id}/locations/{location_id} [put]
// @Router       /inventory/warehouses/{id}/locations/{location_id} [patch]
func (h *WarehouseHandler) UpdateLocation(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	warehouseID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	id, ok := h.PathID(c, "location_id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	location, err := h.warehouseService.UpdateLocation(c.Request.Context(), tenantID, warehouseID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// ListLocations godoc
// @ID           listWarehouseLocations
// @Summary      List the locations of a warehouse
// @Tags         inventory
// @Produce      json
// @Param        id        path  string true  "Warehouse ID" format(uuid)
// @Param        search    query string false "Search code or name"
// @Param        is_active query bool   false "Filter by active flag"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]inventoryapp.LocationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id}/locations [get]
func (h *WarehouseHandler) ListLocations(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	warehouseID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var filter inventoryapp.WarehouseListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	locations, total, err := h.warehouseService.ListLocations(c.Request.Context(), tenantID, warehouseID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, locations, total, filter.Page, filter.PageSize)
}
