package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
)

// LoadUser hydrates the acting user (roles included) from the email claim
// set by Auth and stores it under "user". Tokens for deleted or deactivated
// accounts are rejected here, so handlers never see a stale identity.
func LoadUser(users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get("email").(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := users.FindByEmail(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
				}
				return err
			}
			if !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "account deactivated")
			}

			c.Set("user", user)
			return next(c)
		}
	}
}
