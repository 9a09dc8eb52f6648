package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/handler"
	"shareit/internal/queue"
	"shareit/internal/repository"
	"shareit/internal/router"
	"shareit/internal/service"
)

func main() {
	cfg := config.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	// repos
	users := repository.NewUserRepo(db)
	items := repository.NewItemRepo(db)
	bookings := repository.NewBookingRepo(db)
	requests := repository.NewRequestRepo(db)
	comments := repository.NewCommentRepo(db)

	// services
	events := queue.NewPublisher(queue.BrokerURL())
	userSvc := service.NewUserService(users)
	itemSvc := service.NewItemService(items, users, bookings, requests, comments)
	bookingSvc := service.NewBookingService(bookings, items, users, events)
	requestSvc := service.NewRequestService(requests, items, users)

	// approved-booking consumer; reconnects on its own
	go queue.StartApprovedConsumer(queue.BrokerURL())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, search cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		User:    handler.NewUserHandler(userSvc, log),
		Item:    handler.NewItemHandler(itemSvc, log),
		Booking: handler.NewBookingHandler(bookingSvc, log),
		Request: handler.NewRequestHandler(requestSvc, log),
	}, cfg.GatewaySecret, config.LoadCacheConfig(), rdb)

	addr := ":" + cfg.Port
	log.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
