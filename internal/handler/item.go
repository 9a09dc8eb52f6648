package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"shareit/internal/model"
	"shareit/internal/service"
)

// ItemHandler serves the item catalog endpoints.
type ItemHandler struct {
	Svc *service.ItemService
	Log *slog.Logger
}

// NewItemHandler constructs an ItemHandler.
func NewItemHandler(svc *service.ItemService, log *slog.Logger) *ItemHandler {
	return &ItemHandler{Svc: svc, Log: log}
}

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// Create handles POST /items.
func (h *ItemHandler) Create(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" || req.Available == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, description and available are required"})
	}

	it, err := h.Svc.Create(c.Request().Context(), uid, model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, it)
}

// Update handles PATCH /items/:id.
func (h *ItemHandler) Update(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var patch model.ItemPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	it, err := h.Svc.Update(c.Request().Context(), uid, id, patch)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, it)
}

// Get handles GET /items/:id.
func (h *ItemHandler) Get(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	d, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, d)
}

// ListByOwner handles GET /items.
func (h *ItemHandler) ListByOwner(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	items, err := h.Svc.ListByOwner(c.Request().Context(), uid, from, size)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Search handles GET /items/search. It needs no caller identity and
// its responses are cacheable.
func (h *ItemHandler) Search(c echo.Context) error {
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}

type createCommentRequest struct {
	Text string `json:"text"`
}

// AddComment handles POST /items/:id/comment.
func (h *ItemHandler) AddComment(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	comment, err := h.Svc.AddComment(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, comment)
}
