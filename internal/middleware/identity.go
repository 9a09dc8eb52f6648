// Package middleware contains reusable HTTP middleware for the core
// service and the gateway: caller identity extraction, service-token
// verification, Redis response caching and rate limiting.
package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// SharerHeader is the header carrying the caller's user id on every
// identity-bearing endpoint.
const SharerHeader = "X-Sharer-User-Id"

// Identity extracts the caller id from the X-Sharer-User-Id header
// and stores it in the context under "user_id". A missing or
// non-positive value fails the request at the boundary; handlers
// behind this middleware can rely on a valid id being present.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(SharerHeader)
			if raw == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": SharerHeader + " header is required"})
			}
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": SharerHeader + " must be a positive integer"})
			}
			c.Set("user_id", id)
			return next(c)
		}
	}
}
