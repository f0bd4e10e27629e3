package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/portal-api/internal/core/ports"
)

// AttachmentHandler handles HTTP requests for task attachments.
type AttachmentHandler struct {
	service ports.AttachmentService
}

func NewAttachmentHandler(service ports.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// Add handles POST /v1/tasks/:id/attachments.
//
// @Summary      Attach a file to a task
// @Tags         attachments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Task ID"
// @Param        body  body      addAttachmentRequest  true  "Attachment metadata"
// @Success      201   {object}  domain.TaskAttachment
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/tasks/{id}/attachments [post]
func (h *AttachmentHandler) Add(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req addAttachmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	attachment, err := h.service.Add(c.Request().Context(), actor, c.Param("id"), ports.AddAttachmentInput{
		FileName:    req.FileName,
		Description: req.Description,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, attachment)
}

// List handles GET /v1/tasks/:id/attachments.
//
// @Summary      List a task's attachments
// @Tags         attachments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Task ID"
// @Success      200  {array}   domain.TaskAttachment
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id}/attachments [get]
func (h *AttachmentHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	attachments, err := h.service.ListByTask(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attachments)
}
