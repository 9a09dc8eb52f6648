package gateway

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/middleware"
)

// upstream records what the core service would have received.
type upstream struct {
	mu       sync.Mutex
	calls    int
	lastAuth string
	lastID   string
	lastPath string
	lastBody string
}

func (u *upstream) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		u.mu.Lock()
		u.calls++
		u.lastAuth = r.Header.Get("Authorization")
		u.lastID = r.Header.Get(RequestIDHeader)
		u.lastPath = r.URL.String()
		u.lastBody = string(body)
		u.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	})
}

func newGateway(t *testing.T, upstreamURL string) *echo.Echo {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(upstreamURL, "s3cret", 5*time.Second, log)
	e := echo.New()
	NewHandler(client, log).Register(e)
	return e
}

func gatewayRequest(method, target, body string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req
}

func TestGatewayForwardsValidCreateUser(t *testing.T) {
	up := &upstream{}
	srv := httptest.NewServer(up.handler())
	defer srv.Close()
	e := newGateway(t, srv.URL)

	body := `{"name":"Ann","email":"ann@example.com"}`
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, gatewayRequest(http.MethodPost, "/users", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
	assert.Equal(t, 1, up.calls)
	assert.Equal(t, body, up.lastBody)

	// request id is stamped on the upstream call and echoed back
	assert.Len(t, up.lastID, 26)
	assert.Equal(t, up.lastID, rec.Header().Get(RequestIDHeader))

	// the service token verifies against the shared secret
	raw := strings.TrimPrefix(up.lastAuth, "Bearer ")
	require.NotEmpty(t, raw)
	tok, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	})
	require.NoError(t, err)
	iss, err := tok.Claims.GetIssuer()
	require.NoError(t, err)
	assert.Equal(t, "gateway", iss)
}

func TestGatewayRejectsInvalidBodies(t *testing.T) {
	up := &upstream{}
	srv := httptest.NewServer(up.handler())
	defer srv.Close()
	e := newGateway(t, srv.URL)

	cases := []struct {
		name   string
		method string
		path   string
		header bool
		body   string
	}{
		{"user_bad_email", http.MethodPost, "/users", false, `{"name":"Ann","email":"not-an-email"}`},
		{"user_blank_name", http.MethodPost, "/users", false, `{"name":"   ","email":"a@b.c"}`},
		{"item_missing_available", http.MethodPost, "/items", true, `{"name":"Drill","description":"600W"}`},
		{"comment_blank", http.MethodPost, "/items/1/comment", true, `{"text":"  "}`},
		{"request_blank", http.MethodPost, "/requests", true, `{"description":""}`},
		{"booking_no_item", http.MethodPost, "/bookings", true, `{"start":"2099-01-01T10:00:00Z","end":"2099-01-02T10:00:00Z"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := gatewayRequest(tc.method, tc.path, tc.body)
			if tc.header {
				req.Header.Set(middleware.SharerHeader, "1")
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Zero(t, up.calls, "invalid requests must never reach the core")
}

func TestGatewayBookingDateChecks(t *testing.T) {
	up := &upstream{}
	srv := httptest.NewServer(up.handler())
	defer srv.Close()
	e := newGateway(t, srv.URL)

	future := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	later := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	past := time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)

	post := func(body string) int {
		req := gatewayRequest(http.MethodPost, "/bookings", body)
		req.Header.Set(middleware.SharerHeader, "1")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusBadRequest,
		post(`{"itemId":5,"start":"`+past+`","end":"`+future+`"}`))
	assert.Equal(t, http.StatusBadRequest,
		post(`{"itemId":5,"start":"`+later+`","end":"`+future+`"}`))
	assert.Equal(t, http.StatusBadRequest,
		post(`{"itemId":5,"start":"`+future+`","end":"`+future+`"}`))
	assert.Zero(t, up.calls)

	assert.Equal(t, http.StatusCreated,
		post(`{"itemId":5,"start":"`+future+`","end":"`+later+`"}`))
	assert.Equal(t, 1, up.calls)
}

func TestGatewayQueryValidation(t *testing.T) {
	up := &upstream{}
	srv := httptest.NewServer(up.handler())
	defer srv.Close()
	e := newGateway(t, srv.URL)

	get := func(target string, identified bool) int {
		req := gatewayRequest(http.MethodGet, target, "")
		if identified {
			req.Header.Set(middleware.SharerHeader, "1")
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusBadRequest, get("/bookings?state=SOMEDAY", true))
	assert.Equal(t, http.StatusBadRequest, get("/bookings?size=0", true))
	assert.Equal(t, http.StatusBadRequest, get("/items/search?from=-1", false))
	assert.Equal(t, http.StatusBadRequest, get("/bookings", false)) // identity missing
	assert.Zero(t, up.calls)

	assert.Equal(t, http.StatusCreated, get("/items/search?text=drill", false))
	assert.Equal(t, 1, up.calls)
	assert.Contains(t, up.lastPath, "text=drill")
}

func TestGatewayUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on
	e := newGateway(t, srv.URL)

	req := gatewayRequest(http.MethodGet, "/users", "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
