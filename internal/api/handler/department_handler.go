package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
)

// DepartmentHandler handles the department reference data. Thin enough that
// it talks to the repository directly.
type DepartmentHandler struct {
	departments ports.DepartmentRepository
}

func NewDepartmentHandler(departments ports.DepartmentRepository) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

type createDepartmentRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create handles POST /v1/departments.
//
// @Summary      Create a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDepartmentRequest  true  "Department details"
// @Success      201   {object}  domain.Department
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/departments [post]
func (h *DepartmentHandler) Create(c echo.Context) error {
	var req createDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dept, err := h.departments.Create(c.Request().Context(), &domain.Department{Name: req.Name})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dept)
}

// List handles GET /v1/departments.
//
// @Summary      List departments
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Department
// @Router       /v1/departments [get]
func (h *DepartmentHandler) List(c echo.Context) error {
	depts, err := h.departments.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, depts)
}
