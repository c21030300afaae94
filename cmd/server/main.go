package main // Entry point package

import (
	"log" // Fatal startup errors

	"github.com/joho/godotenv"    // .env loader for local runs
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/film-afisha/backend/internal/config"
	"github.com/film-afisha/backend/internal/handler"
	"github.com/film-afisha/backend/internal/logger"
	"github.com/film-afisha/backend/internal/middleware"
	"github.com/film-afisha/backend/internal/queue"
	"github.com/film-afisha/backend/internal/repository"
	"github.com/film-afisha/backend/internal/router"
	"github.com/film-afisha/backend/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly

	cfg := config.Load()
	lg := logger.New(cfg.LoggerType)

	// The storage backend is chosen exactly once, here.  Everything
	// downstream sees only the FilmRepository port.
	store, closeStore, err := repository.NewStore(repository.StoreConfig{
		Driver:    cfg.Driver,
		MongoURI:  cfg.MongoURI,
		MongoDB:   cfg.MongoDB,
		MySQLUser: cfg.DBUser,
		MySQLPass: cfg.DBPass,
		MySQLHost: cfg.DBHost,
		MySQLPort: cfg.DBPort,
		MySQLName: cfg.DBName,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	rdb := config.NewRedisClient() // nil when Redis is unreachable
	if rdb == nil {
		lg.Warn("redis unavailable: response cache and rate limiting disabled")
	}

	orders := service.NewOrderService(store)
	filmsHandler := handler.NewFilmsHandler(store, lg)
	orderHandler := handler.NewOrderHandler(orders, lg)

	// Background consumer appending confirmed orders to logs/orders.log.
	go queue.StartOrderConsumer(lg)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	// Posters and covers referenced by the catalog.
	e.Static("/content/afisha", cfg.StaticDir)

	router.RegisterRoutes(e, filmsHandler, orderHandler)

	addr := ":" + cfg.Port
	lg.Log("listening", addr, cfg.Env, cfg.Driver)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
