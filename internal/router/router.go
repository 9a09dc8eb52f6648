// Package router wires the HTTP routes of the core service.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"shareit/internal/config"
	"shareit/internal/handler"
	custommw "shareit/internal/middleware"
)

// Handlers bundles the handler set the core service exposes.
type Handlers struct {
	User    *handler.UserHandler
	Item    *handler.ItemHandler
	Booking *handler.BookingHandler
	Request *handler.RequestHandler
}

// Register mounts all routes. Every API route sits behind the service
// token check (a no-op when gatewaySecret is empty). User registry
// routes carry no identity header; item, booking and request routes
// require X-Sharer-User-Id, except item search which is anonymous and
// cacheable.
func Register(e *echo.Echo, h Handlers, gatewaySecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	api := e.Group("", custommw.ServiceToken(gatewaySecret))

	users := api.Group("/users")
	users.POST("", h.User.Create)
	users.GET("", h.User.GetAll)
	users.GET("/:id", h.User.Get)
	users.PATCH("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)

	// Registered outside the identity group so guests can search.
	api.GET("/items/search", h.Item.Search, custommw.SearchCache(cacheCfg, rdb))

	items := api.Group("/items", custommw.Identity())
	items.POST("", h.Item.Create)
	items.GET("", h.Item.ListByOwner)
	items.GET("/:id", h.Item.Get)
	items.PATCH("/:id", h.Item.Update)
	items.POST("/:id/comment", h.Item.AddComment)

	bookings := api.Group("/bookings", custommw.Identity())
	bookings.POST("", h.Booking.Create)
	bookings.GET("", h.Booking.ListForBooker)
	bookings.GET("/owner", h.Booking.ListForOwner)
	bookings.GET("/:id", h.Booking.Get)
	bookings.PATCH("/:id", h.Booking.SetApproval)
	bookings.DELETE("/:id", h.Booking.Cancel)

	requests := api.Group("/requests", custommw.Identity())
	requests.POST("", h.Request.Create)
	requests.GET("", h.Request.ListOwn)
	requests.GET("/all", h.Request.ListOthers)
	requests.GET("/:id", h.Request.Get)
}
