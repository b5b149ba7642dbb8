package handler

import (
	hrapp "github.com/erpsuite/backend/internal/application/hr"
	"github.com/gin-gonic/gin"
)

// HRHandler handles departments and employees
type HRHandler struct {
	BaseHandler
	hrService *hrapp.Service
}

// NewHRHandler creates a new HRHandler
func NewHRHandler(hrService *hrapp.Service) *HRHandler {
	return &HRHandler{hrService: hrService}
}

// CreateDepartment godoc
// @ID           createDepartment
// @Summary      Create a department
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        request body hrapp.CreateDepartmentRequest true "Department"
// @Success      201 {object} APIResponse[hrapp.DepartmentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /hr/departments [post]
func (h *HRHandler) CreateDepartment(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req hrapp.CreateDepartmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.hrService.CreateDepartment(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetDepartment godoc
// @ID           getDepartmentById
// @Summary      Get a department
// @Tags         hr
// @Produce      json
// @Param        id path string true "Department ID" format(uuid)
// @Success      200 {object} APIResponse[hrapp.DepartmentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /hr/departments/{id} [get]
func (h *HRHandler) GetDepartment(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.hrService.GetDepartment(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateDepartment godoc
// @ID           updateDepartment
// @Summary      Update a department
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id      path string true "Department ID" format(uuid)
// @Param        request body hrapp.UpdateDepartmentRequest true "Changes"
// @Success      200 {object} APIResponse[hrapp.DepartmentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /hr/departments/{id} [put]
// @Router       /hr/departments/{id} [patch]
func (h *HRHandler) UpdateDepartment(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req hrapp.UpdateDepartmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.hrService.UpdateDepartment(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListDepartments godoc
// @ID           listDepartments
// @Summary      List departments
// @Tags         hr
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        is_active query bool   false "Filter by active flag"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]hrapp.DepartmentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /hr/departments [get]
func (h *HRHandler) ListDepartments(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter hrapp.DepartmentListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.hrService.ListDepartments(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// CreateEmployee godoc
// @ID           createEmployee
// @Summary      Create an employee
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        request body hrapp.CreateEmployeeRequest true "Employee"
// @Success      201 {object} APIResponse[hrapp.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /hr/employees [post]
func (h *HRHandler) CreateEmployee(c *gin.Context) {
	tenantID, userID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req hrapp.CreateEmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.hrService.CreateEmployee(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetEmployee godoc
// @ID           getEmployeeById
// @Summary      Get an employee
// @Tags         hr
// @Produce      json
// @Param        id path string true "Employee ID" format(uuid)
// @Success      200 {object} APIResponse[hrapp.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /hr/employees/{id} [get]
func (h *HRHandler) GetEmployee(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	result, err := h.hrService.GetEmployee(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateEmployee godoc
// @ID           updateEmployee
// @Summary      Update an employee
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id      path string true "Employee ID" format(uuid)
// @Param        request body hrapp.UpdateEmployeeRequest true "Changes"
// @Success      200 {object} APIResponse[hrapp.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /hr/employees/{id} [put]
// @Router       /hr/employees/{id} [patch]
func (h *HRHandler) UpdateEmployee(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req hrapp.UpdateEmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.hrService.UpdateEmployee(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListEmployees godoc
// @ID           listEmployees
// @Summary      List employees
// @Tags         hr
// @Produce      json
// @Param        search    query string false "Search text"
// @Param        department_id query string false "Filter by department" format(uuid)
// @Param        is_active     query bool   false "Filter by active flag"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]hrapp.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /hr/employees [get]
func (h *HRHandler) ListEmployees(c *gin.Context) {
	tenantID, _, ok := h.Principal(c)
	if !ok {
		return
	}
	var filter hrapp.EmployeeListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	items, total, err := h.hrService.ListEmployees(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}
