package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SelfOnly restricts a route carrying an :id path parameter to the account
// named by the token. Account maintenance endpoints use it so one user can
// never update or delete another user's identity.
func SelfOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if c.Param("id") != userID {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
			}
			return next(c)
		}
	}
}
