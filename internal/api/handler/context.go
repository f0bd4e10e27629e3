package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/portal-api/internal/core/domain"
)

// currentUser extracts the acting user injected by the LoadUser middleware
// and performs a fast-fail check before any service call: presence proves
// the middleware chain ran.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
