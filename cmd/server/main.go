package main // Entry point package

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/event-seat-reservation/internal/config"
	"github.com/iliyamo/event-seat-reservation/internal/handler"
	"github.com/iliyamo/event-seat-reservation/internal/middleware"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
	"github.com/iliyamo/event-seat-reservation/internal/router"
	"github.com/iliyamo/event-seat-reservation/internal/service"
	"github.com/iliyamo/event-seat-reservation/internal/store"
)

func main() {
	// Load a local .env file when present; real environments set the
	// variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	// Redis is the lease store holding all seat state, so an unreachable
	// server is fatal at startup rather than degraded at request time.
	rdb, err := config.NewRedisClient()
	if err != nil {
		logrus.WithError(err).Fatal("connect to lease store")
	}

	leaseStore := store.NewRedis(rdb)
	repo := repository.NewEventRepo(leaseStore)
	svc := service.NewEventService(repo, cfg.HoldTTL)
	h := handler.NewEventHandler(svc)

	e := echo.New()
	e.HideBanner = true
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e, h, rateLimit)

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{
		"addr":     addr,
		"env":      cfg.Env,
		"hold_ttl": cfg.HoldTTL.String(),
	}).Info("starting server")

	if err := e.Start(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
