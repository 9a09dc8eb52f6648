package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"shareit/internal/config"
	"shareit/internal/gateway"
	"shareit/internal/middleware"
)

func main() {
	cfg := config.LoadGateway()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	client := gateway.NewClient(cfg.ServerURL, cfg.GatewaySecret, cfg.Timeout, log)
	gateway.NewHandler(client, log).Register(e)

	addr := ":" + cfg.Port
	log.Info("listening", "addr", addr, "env", cfg.Env, "upstream", cfg.ServerURL)
	if err := e.Start(addr); err != nil {
		log.Error("gateway stopped", "err", err)
		os.Exit(1)
	}
}
