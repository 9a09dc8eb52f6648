// Package handler exposes the HTTP surface of the core service. It
// binds and sanity-checks transport input, delegates to the service
// layer and maps coded service errors onto HTTP statuses.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/internal/service"
)

// userIDKey is the echo context key the identity middleware stores
// the caller id under.
const userIDKey = "user_id"

// callerID extracts the caller identity placed into the context by
// the identity middleware.
func callerID(c echo.Context) (int64, error) {
	if id, ok := c.Get(userIDKey).(int64); ok && id > 0 {
		return id, nil
	}
	return 0, errors.New("missing caller identity")
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// pageParams reads the from/size query parameters with the
// defaults of the original API. Range validation belongs to the
// service layer; only syntax is checked here.
func pageParams(c echo.Context) (from, size int, err error) {
	from, size = 0, 10
	if raw := c.QueryParam("from"); raw != "" {
		if from, err = strconv.Atoi(raw); err != nil {
			return 0, 0, errors.New("invalid from")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil {
			return 0, 0, errors.New("invalid size")
		}
	}
	return from, size, nil
}

// respondError translates a service error into an HTTP response.
// Unknown errors are logged and answered generically so nothing is
// silently swallowed and nothing internal leaks.
func respondError(c echo.Context, log *slog.Logger, err error) error {
	switch service.Code(err) {
	case service.CodeNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case service.CodeValidation, service.CodeUnknownState:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case service.CodeConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		log.Error("unhandled service error", "err", err, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
