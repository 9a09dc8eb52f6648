// Package gateway implements the thin edge process: it validates
// request shapes, rate-limits, stamps a request id and a signed
// service token, and relays everything else to the core service.
package gateway

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"shareit/internal/middleware"
)

// RequestIDHeader carries the ULID the gateway assigns to each
// forwarded request.
const RequestIDHeader = "X-Request-Id"

// Client relays validated requests to the core service.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
	log     *slog.Logger
}

// NewClient builds a forwarding client for the core service at
// baseURL. When secret is non-empty each forwarded request carries a
// short-lived HS256 service token the core verifies.
func NewClient(baseURL, secret string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Forward relays the incoming request to the core service preserving
// method, path, query and the identity header, and copies the
// upstream status and body back verbatim. body holds the already-read
// request body; nil is fine for bodyless methods.
func (g *Client) Forward(c echo.Context, body []byte) error {
	in := c.Request()
	url := g.baseURL + in.URL.Path
	if q := in.URL.RawQuery; q != "" {
		url += "?" + q
	}

	out, err := http.NewRequestWithContext(in.Context(), in.Method, url, bytes.NewReader(body))
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "upstream request build failed"})
	}
	if len(body) > 0 {
		out.Header.Set("Content-Type", "application/json")
	}
	if uid := in.Header.Get(middleware.SharerHeader); uid != "" {
		out.Header.Set(middleware.SharerHeader, uid)
	}
	reqID := ulid.Make().String()
	out.Header.Set(RequestIDHeader, reqID)
	if g.secret != "" {
		token, err := g.serviceToken()
		if err != nil {
			g.log.Error("service token signing failed", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
		out.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.http.Do(out)
	if err != nil {
		g.log.Error("forward failed",
			"method", in.Method, "path", in.URL.Path, "request_id", reqID, "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "upstream unavailable"})
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		g.log.Error("forward read failed", "request_id", reqID, "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "upstream read failed"})
	}

	c.Response().Header().Set(RequestIDHeader, reqID)
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	if len(respBody) == 0 {
		return c.NoContent(resp.StatusCode)
	}
	return c.Blob(resp.StatusCode, contentType, respBody)
}

// serviceToken signs a short-lived token identifying this process to
// the core service.
func (g *Client) serviceToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "gateway",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Minute)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(g.secret))
}
