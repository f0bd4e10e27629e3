package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/portal-api/internal/core/access"
	"github.com/teamhub/portal-api/internal/core/domain"
)

// RequirePermissions rejects requests whose user lacks any of the named
// permissions. Must run after LoadUser. Services re-check on their own;
// this is the cheap first gate at the transport edge.
func RequirePermissions(perms ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get("user").(*domain.User)
			if !access.HasPermissions(user, perms) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
