package handler

import (
	inventoryapp "github.com/erpsuite/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// StockHandler handles stock rows and inventory transactions
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// CreateStock godoc
// @ID           createStock
// @Summary      Create a stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateStockRequest true "Stock"
// @Success      201 {object} APIResponse[inventoryapp.StockResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/stocks [post]
func (h *StockHandler) CreateStock(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req inventoryapp.CreateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.stockService.CreateStock(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetStock godoc
// @ID           getStockById
// @Summary      Get a stock
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Stock ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.StockResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/stocks/{id} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.stockService.GetStock(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateStock godoc
// @ID           updateStock
// @Summary      Update a stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id      path string true "Stock ID" format(uuid)
// @Param        request body inventoryapp.UpdateStockRequest true "Changes"
// @Success      200 {object} APIResponse[inventoryapp.StockResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/stocks/{id} [put]
// @Router       /inventory/stocks/{id} [patch]
func (h *StockHandler) UpdateStock(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.stockService.UpdateStock(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListStocks godoc
// @ID           listStocks
// @Summary      List stocks
// @Tags         inventory
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        product_id   query string false "Filter by product" format(uuid)
// @Param        warehouse_id query string false "Filter by warehouse" format(uuid)
// @Param        location_id  query string false "Filter by location" format(uuid)
// @Param        low_stock    query bool   false "Only rows at or below the product minimum"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]inventoryapp.StockResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/stocks [get]
func (h *StockHandler) ListStocks(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter inventoryapp.StockListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.stockService.ListStocks(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// CreateTransaction godoc
// @ID           createTransaction
// @Summary      Record an inventory transaction
// @Description  Appends an IN or OUT movement and applies it to the matching stock row
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateTransactionRequest true "Transaction"
// @Success      201 {object} APIResponse[inventoryapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/transactions [post]
func (h *StockHandler) CreateTransaction(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req inventoryapp.CreateTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.stockService.CreateTransaction(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetTransaction godoc
// @ID           getTransactionById
// @Summary      Get a transaction
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/transactions/{id} [get]
func (h *StockHandler) GetTransaction(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.stockService.GetTransaction(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListTransactions godoc
// @ID           listTransactions
// @Summary      List transactions
// @Tags         inventory
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        product_id   query string false "Filter by product" format(uuid)
// @Param        warehouse_id query string false "Filter by warehouse" format(uuid)
// @Param        type         query string false "Movement type" Enums(IN, OUT)
// @Param        reference    query string false "Filter by reference"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]inventoryapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/transactions [get]
func (h *StockHandler) ListTransactions(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter inventoryapp.TransactionListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.stockService.ListTransactions(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}
