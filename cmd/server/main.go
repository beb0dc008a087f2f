package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/lunchly/internal/config"
	"github.com/iliyamo/lunchly/internal/database"
	"github.com/iliyamo/lunchly/internal/handler"
	"github.com/iliyamo/lunchly/internal/middleware"
	"github.com/iliyamo/lunchly/internal/queue"
	"github.com/iliyamo/lunchly/internal/repository"
	"github.com/iliyamo/lunchly/internal/router"
	"github.com/iliyamo/lunchly/internal/service"
)

func logLevel(s string) log.Lvl {
	switch s {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	log.SetLevel(logLevel(cfg.LogLevel))

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	reservations := repository.NewReservationRepo(db)
	customers := repository.NewCustomerRepo(db, reservations)
	staff := repository.NewStaffRepo(db)
	tokens := repository.NewTokenRepo(db)

	// Cache and rate limit fall back to pass-through when rdb is nil.
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var events handler.EventPublisher
	if config.EventsEnabled() {
		events = service.NewPublisher(config.BrokerURL())
		go func() {
			if err := queue.StartReservationConsumer(ctx, config.BrokerURL(), config.EventLogDir()); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorf("reservation consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.LogLevel))
	if cfg.Tracing {
		e.Use(middleware.Tracing("lunchly"))
	}
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, staff, tokens), cfg.JWTSecret, limit)
	router.RegisterCustomers(e,
		handler.NewCustomerHandler(customers),
		handler.NewReservationHandler(customers, reservations, events),
		cfg.JWTSecret, limit, cache)

	addr := ":" + cfg.Port
	go func() {
		e.Logger.Infof("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
