package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/portal-api/internal/core/ports"
)

// CommentHandler handles HTTP requests for task comments.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Add handles POST /v1/tasks/:id/comments.
//
// @Summary      Comment on a task
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      addCommentRequest  true  "Comment content"
// @Success      201   {object}  domain.TaskComment
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/tasks/{id}/comments [post]
func (h *CommentHandler) Add(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Add(c.Request().Context(), actor, c.Param("id"), req.Content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, comment)
}

// List handles GET /v1/tasks/:id/comments.
//
// @Summary      List a task's comments
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Task ID"
// @Success      200  {array}   domain.TaskComment
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	comments, err := h.service.ListByTask(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, comments)
}
