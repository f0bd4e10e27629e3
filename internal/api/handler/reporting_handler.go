package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/portal-api/internal/core/ports"
)

// ReportingHandler handles the aggregate reporting endpoint.
type ReportingHandler struct {
	service ports.ReportingService
}

func NewReportingHandler(service ports.ReportingService) *ReportingHandler {
	return &ReportingHandler{service: service}
}

// Summary handles GET /v1/reporting/summary.
//
// @Summary      Task reporting summary
// @Tags         reporting
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ReportingSummary
// @Failure      403  {object}  map[string]string
// @Router       /v1/reporting/summary [get]
func (h *ReportingHandler) Summary(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary)
}
