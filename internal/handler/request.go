package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"shareit/internal/service"
)

// RequestHandler serves the item request endpoints.
type RequestHandler struct {
	Svc *service.RequestService
	Log *slog.Logger
}

// NewRequestHandler constructs a RequestHandler.
func NewRequestHandler(svc *service.RequestService, log *slog.Logger) *RequestHandler {
	return &RequestHandler{Svc: svc, Log: log}
}

type createRequestRequest struct {
	Description string `json:"description"`
}

// Create handles POST /requests.
func (h *RequestHandler) Create(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Description) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "description is required"})
	}

	out, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// ListOwn handles GET /requests.
func (h *RequestHandler) ListOwn(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	out, err := h.Svc.ListOwn(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListOthers handles GET /requests/all.
func (h *RequestHandler) ListOthers(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	out, err := h.Svc.ListOthers(c.Request().Context(), uid, from, size)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /requests/:id.
func (h *RequestHandler) Get(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	out, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}
