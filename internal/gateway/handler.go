package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/internal/middleware"
	"shareit/internal/model"
)

// Handler validates request shapes at the edge and relays everything
// that passes to the core service. Business rules stay in the core;
// only syntax, ranges and date sanity are checked here.
type Handler struct {
	client *Client
	valid  *validator.Validate
	log    *slog.Logger
}

// NewHandler builds the gateway handler set.
func NewHandler(client *Client, log *slog.Logger) *Handler {
	v := validator.New()
	// required accepts whitespace-only strings, notblank does not
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Handler{client: client, valid: v, log: log}
}

// Register mounts the gateway routes. The route set mirrors the core
// service one to one.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	e.POST("/users", h.CreateUser)
	e.GET("/users", h.forward)
	e.GET("/users/:id", h.forwardWithID)
	e.PATCH("/users/:id", h.UpdateUser)
	e.DELETE("/users/:id", h.forwardWithID)

	e.GET("/items/search", h.SearchItems)
	e.POST("/items", h.CreateItem)
	e.GET("/items", h.listWithIdentity)
	e.GET("/items/:id", h.forwardWithIdentityAndID)
	e.PATCH("/items/:id", h.UpdateItem)
	e.POST("/items/:id/comment", h.AddComment)

	e.POST("/bookings", h.CreateBooking)
	e.GET("/bookings", h.ListBookings)
	e.GET("/bookings/owner", h.ListBookings)
	e.GET("/bookings/:id", h.forwardWithIdentityAndID)
	e.PATCH("/bookings/:id", h.SetApproval)
	e.DELETE("/bookings/:id", h.forwardWithIdentityAndID)

	e.POST("/requests", h.CreateRequest)
	e.GET("/requests", h.forwardWithIdentity)
	e.GET("/requests/all", h.listWithIdentity)
	e.GET("/requests/:id", h.forwardWithIdentityAndID)
}

type createUserBody struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"notblank,email"`
}

type patchUserBody struct {
	Name  *string `json:"name" validate:"omitempty,notblank"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type createItemBody struct {
	Name        string `json:"name" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitempty,gt=0"`
}

type patchItemBody struct {
	Name        *string `json:"name" validate:"omitempty,notblank"`
	Description *string `json:"description" validate:"omitempty,notblank"`
	Available   *bool   `json:"available"`
}

type createCommentBody struct {
	Text string `json:"text" validate:"notblank"`
}

type createRequestBody struct {
	Description string `json:"description" validate:"notblank"`
}

type createBookingBody struct {
	ItemID int64      `json:"itemId" validate:"required,gt=0"`
	Start  *time.Time `json:"start" validate:"required"`
	End    *time.Time `json:"end" validate:"required"`
}

// CreateUser handles POST /users.
func (h *Handler) CreateUser(c echo.Context) error {
	var body createUserBody
	raw, err := h.readValid(c, &body)
	if err != nil {
		return badRequest(c, err)
	}
	return h.client.Forward(c, raw)
}

// UpdateUser handles PATCH /users/:id.
func (h *Handler) UpdateUser(c echo.Context) error {
	if err := checkPathID(c, "id"); err != nil {
		return badRequest(c, err)
	}
	var body patchUserBody
	raw, err := h.readValid(c, &body)
	if err != nil {
		return badRequest(c, err)
	}
	return h.client.Forward(c, raw)
}

// CreateItem handles POST /items.
func (h *Handler) CreateItem(c echo.Context) error {
	if err := checkIdentity(c); err != nil {
		return badRequest(c, err)
	}
	var body createItemBody
	raw, err := h.readValid(c, &body)
	if err != nil {
		return badRequest(c, err)
	}
	return h.client.Forward(c, raw)
}

// UpdateItem handles PATCH /items/:id.
func (h *Handler) UpdateItem(c echo.Context) error {
	if err := checkIdentity(c); err != nil {
		return badRequest(c, err)
	}
	if err := checkPathID(c, "id"); err != nil {
		return badRequest(c, err)
	}
	var body patchItemBody
	raw, err := h.readValid(c, &body)
	if err != nil {
		return badRequest(c, err)
	}
	return h.client.Forward(c, raw)
}

// SearchItems handles GET /items/search. No identity needed.
func (h *Handler) SearchItems(c echo.Context) error {
	if err := checkPage(c); err != nil {
		return badRequest(c, err)
	}
	return h.client.Forward(c, nil)
}

// AddComment handles POST /items/:id/comment.
func (h *Handler) AddComment(c echo.Context) error {
	if err := checkIdentity(c); err != nil {
		return badRequest(c, err)
	}
	if err := checkPathID(c, "id"); err != nil {
		return badRequest(c, err)
	}
	var body createCommentBody
	raw, err := h.readValid(c, &body)
	if err != nil {
		return badRequest(c, err)
	}
	return h.client.Forward(c, raw)
}

// CreateBooking handles POST /bookings. Besides shape validation the
// booking window must lie in the future and start strictly before
// end; everything else is the core's call.
func (h *Handler) CreateBooking(c echo.Context) error {
	if err := checkIdentity(c); err != nil {
		return badRequest(c, err)
	}
	var body createBookingBody
	raw, err := h.readValid(c, &body)
	if err != nil {
		return badRequest(c, err)
	}
	now := time.Now()
	if body.Start.Before(now.Add(-time.Second)) {
		return badRequest(c, errors.New("start must not be in the past"))
	}
	if !body.End.After(now) {
		return badRequest(c, errors.New("end must be in the future"))
	}
	if !body.Start.Before(*body.End) {
		return badRequest(c, errors.New("start must be before end"))
	}
	return h.client.Forward(c, raw)
}

// ListBookings handles GET /bookings and GET /bookings/owner.
func (h *Handler) ListBookings(c echo.Context) error {
	if err := checkIdentity(c); err != nil {
		return badRequest(c, err)
	}
	if _, err := model.ParseBookingState(c.QueryParam("state")); err != nil {
		return badRequest(c, err)
	}
	if err := checkPage(c); err != nil {
		return badRequest(c, err)
	}
	return h.client.Forward(c, nil)
}

// SetApproval handles PATCH /bookings/:id.
func (h *Handler) SetApproval(c echo.Context) error {
	if err := checkIdentity(c); err != nil {
		return badRequest(c, err)
	}
	if err := checkPathID(c, "id"); err != nil {
		return badRequest(c, err)
	}
	if _, err := strconv.ParseBool(c.QueryParam("approved")); err != nil {
		return badRequest(c, errors.New("approved must be true or false"))
	}
	return h.client.Forward(c, nil)
}

// CreateRequest handles POST /requests.
func (h *Handler) CreateRequest(c echo.Context) error {
	if err := checkIdentity(c); err != nil {
		return badRequest(c, err)
	}
	var body createRequestBody
	raw, err := h.readValid(c, &body)
	if err != nil {
		return badRequest(c, err)
	}
	return h.client.Forward(c, raw)
}

// forward relays without any checks.
func (h *Handler) forward(c echo.Context) error {
	return h.client.Forward(c, nil)
}

func (h *Handler) forwardWithID(c echo.Context) error {
	if err := checkPathID(c, "id"); err != nil {
		return badRequest(c, err)
	}
	return h.client.Forward(c, nil)
}

func (h *Handler) forwardWithIdentity(c echo.Context) error {
	if err := checkIdentity(c); err != nil {
		return badRequest(c, err)
	}
	return h.client.Forward(c, nil)
}

func (h *Handler) forwardWithIdentityAndID(c echo.Context) error {
	if err := checkIdentity(c); err != nil {
		return badRequest(c, err)
	}
	if err := checkPathID(c, "id"); err != nil {
		return badRequest(c, err)
	}
	return h.client.Forward(c, nil)
}

func (h *Handler) listWithIdentity(c echo.Context) error {
	if err := checkIdentity(c); err != nil {
		return badRequest(c, err)
	}
	if err := checkPage(c); err != nil {
		return badRequest(c, err)
	}
	return h.client.Forward(c, nil)
}

// readValid consumes the request body, binds it into dst and runs
// struct validation. The raw bytes are returned for forwarding so the
// payload reaches the core unmodified.
func (h *Handler) readValid(c echo.Context, dst any) ([]byte, error) {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, errors.New("unreadable request body")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, errors.New("invalid request body")
	}
	if err := h.valid.Struct(dst); err != nil {
		return nil, errors.New(validationMessage(err))
	}
	return raw, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return "invalid value for field " + strings.ToLower(f.Field()[:1]) + f.Field()[1:]
	}
	return err.Error()
}

func checkIdentity(c echo.Context) error {
	id, err := strconv.ParseInt(c.Request().Header.Get(middleware.SharerHeader), 10, 64)
	if err != nil || id <= 0 {
		return errors.New("missing or invalid " + middleware.SharerHeader + " header")
	}
	return nil
}

func checkPathID(c echo.Context, name string) error {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return errors.New("invalid " + name)
	}
	return nil
}

func checkPage(c echo.Context) error {
	from, size := 0, 10
	var err error
	if raw := c.QueryParam("from"); raw != "" {
		if from, err = strconv.Atoi(raw); err != nil {
			return errors.New("invalid from")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil {
			return errors.New("invalid size")
		}
	}
	if from < 0 || size < 1 {
		return errors.New("from must be >= 0 and size >= 1")
	}
	return nil
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}
