package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/cinema-backoffice/internal/clock"
	"github.com/iliyamo/cinema-backoffice/internal/config"
	"github.com/iliyamo/cinema-backoffice/internal/database"
	"github.com/iliyamo/cinema-backoffice/internal/handler"
	"github.com/iliyamo/cinema-backoffice/internal/middleware"
	"github.com/iliyamo/cinema-backoffice/internal/queue"
	"github.com/iliyamo/cinema-backoffice/internal/repository"
	"github.com/iliyamo/cinema-backoffice/internal/router"
	"github.com/iliyamo/cinema-backoffice/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Fatalf("database: migrate: %v", err)
		}
		log.Printf("database: schema applied")
	}

	stores := service.Stores{
		Theaters:   repository.NewTheaterRepo(db),
		Categories: repository.NewCategoryRepo(db),
		Movies:     repository.NewMovieRepo(db),
		Screens:    repository.NewScreenRepo(db),
		Customers:  repository.NewCustomerRepo(db),
		Tickets:    repository.NewTicketRepo(db),
	}
	var opts []service.Option
	if cfg.RabbitURL != "" {
		opts = append(opts, service.WithPublisher(queue.NewPublisher(cfg.RabbitURL, cfg.EventsQueue)))
		go queue.NewConsumer(cfg.RabbitURL, cfg.EventsQueue, cfg.EventsLogDir).Run()
	} else {
		log.Printf("events: RABBITMQ_URL not set, domain events disabled")
	}
	backoffice := service.NewBackoffice(repository.NewTxManager(db), stores, clock.System(), opts...)

	staff := service.NewStaff(repository.NewUserRepo(db), cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := staff.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Printf("staff: bootstrap admin: %v", err)
		}
		cancel()
	}

	// Redis is optional: without it caching and rate limiting are no-ops.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(staff), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(backoffice), cfg.JWTSecret, middleware.NewRedisCache(cacheCfg, rdb))
	router.RegisterStaff(e, handler.NewAdminHandler(backoffice), cfg.JWTSecret,
		middleware.NewTokenBucket(rlCfg, rdb), middleware.PurgeOnWrite(cacheCfg, rdb))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
