package handler

import (
	companyapp "github.com/erpsuite/backend/internal/application/company"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company (tenant) endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *companyapp.Service
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *companyapp.Service) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Create godoc
// @ID           createCompany
// @Summary      Create a company (tenant onboarding)
// @Tags         core
// @Accept       json
// @Produce      json
// @Param        request body companyapp.CreateCompanyRequest true "Company"
// @Success      201 {object} APIResponse[companyapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /core/companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req companyapp.CreateCompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	company, err := h.companyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}

// GetByID godoc
// @ID           getCompanyById
// @Summary      Get a company
// @Tags         core
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} APIResponse[companyapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /core/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	company, err := h.companyService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// Update godoc
// @ID           updateCompany
// @Summary      Update a company
// @Tags         core
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Company ID" format(uuid)
// @Param        request body companyapp.UpdateCompanyRequest true "Changes"
// @Success      200 {object} APIResponse[companyapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /core/companies/{id} [put]
// @Router       /core/companies/{id} [patch]
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req companyapp.UpdateCompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	company, err := h.companyService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// List godoc
// @ID           listCompanies
// @Summary      List the caller's company
// @Tags         core
// @Produce      json
// @Param        search    query string false "Search code or name"
// @Param        is_active query bool   false "Filter by active flag"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]companyapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /core/companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter companyapp.CompanyListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	companies, total, err := h.companyService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, companies, total, filter.Page, filter.PageSize)
}
