package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SivakumaranJathurshan/CourseWork/config"
	"github.com/SivakumaranJathurshan/CourseWork/internal/database"
	"github.com/SivakumaranJathurshan/CourseWork/internal/handlers"
	"github.com/SivakumaranJathurshan/CourseWork/internal/jobs"
	"github.com/SivakumaranJathurshan/CourseWork/internal/logging"
	"github.com/SivakumaranJathurshan/CourseWork/internal/middleware"
	"github.com/SivakumaranJathurshan/CourseWork/internal/repository"
	"github.com/SivakumaranJathurshan/CourseWork/internal/services"
	"github.com/SivakumaranJathurshan/CourseWork/internal/telemetry"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.IsDevelopment(), cfg.LogFile)

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Options{
		Enabled:     cfg.OTelEnabled,
		ServiceName: cfg.OTelServiceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTelEndpoint,
	})
	if err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logging.Logger().Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	if err := middleware.InitMetrics(); err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to initialize metrics")
	}

	db, err := database.OpenWithRetry(ctx, database.Config{
		DatabaseURL: cfg.DatabaseURL,
		Debug:       cfg.IsDevelopment(),
		Tracing:     cfg.OTelEnabled,
	}, 5)
	if err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to run database migrations")
	}
	if cfg.SeedData {
		if err := database.Seed(db); err != nil {
			logging.Logger().Fatal().Err(err).Msg("failed to seed database")
		}
	}

	var notifier services.LowStockNotifier
	if cfg.JobsEnabled() {
		jobClient, err := jobs.NewClient(cfg.RedisAddr())
		if err != nil {
			logging.Logger().Fatal().Err(err).Msg("failed to create job client")
		}
		defer jobClient.Close()
		notifier = jobClient
	} else {
		logging.Logger().Warn().Msg("REDIS_URL not set, low stock alerts are disabled")
	}

	jwtSettings := services.JWTSettings{
		Key:      cfg.JWTKey,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		Expiry:   cfg.JWTExpiry(),
	}

	authService := services.NewAuthService(repository.NewUserRepository(db), jwtSettings, logging.Component("auth"))
	categoryService := services.NewCategoryService(repository.NewCategoryRepository(db), logging.Component("categories"))
	supplierService := services.NewSupplierService(repository.NewSupplierRepository(db), logging.Component("suppliers"))
	productService := services.NewProductService(repository.NewProductRepository(db), logging.Component("products"))
	inventoryService := services.NewInventoryService(repository.NewInventoryRepository(db), notifier, logging.Component("inventory"))
	orderService := services.NewOrderService(repository.NewOrderRepository(db), inventoryService, logging.Component("orders"))

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewValidator()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	if cfg.OTelEnabled {
		e.Use(otelecho.Middleware(cfg.OTelServiceName, otelecho.WithSkipper(func(c echo.Context) bool {
			return c.Path() == "/api/health" || c.Path() == "/metrics"
		})))
	}
	e.Use(middleware.Metrics())

	if cfg.IsDevelopment() {
		e.Use(echomiddleware.Logger())
	}

	e.GET("/metrics", telemetry.MetricsHandler())

	limiter := middleware.NewConcurrencyLimiter(cfg.RateLimitPermits, cfg.RateLimitQueue)
	handlers.Register(e, handlers.Handlers{
		Health:     handlers.NewHealthHandler(db, redisAddr(cfg)),
		Auth:       handlers.NewAuthHandler(authService),
		Categories: handlers.NewCategoryHandler(categoryService),
		Suppliers:  handlers.NewSupplierHandler(supplierService),
		Products:   handlers.NewProductHandler(productService),
		Inventory:  handlers.NewInventoryHandler(inventoryService),
		Orders:     handlers.NewOrderHandler(orderService),
	},
		middleware.JWTAuth(cfg.JWTKey, cfg.JWTIssuer, cfg.JWTAudience),
		limiter.Middleware("api"),
	)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logging.Logger().Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logging.Logger().Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Logger().Error().Err(err).Msg("failed to shutdown server")
	}
}

func redisAddr(cfg *config.Config) string {
	if !cfg.JobsEnabled() {
		return ""
	}
	return cfg.RedisAddr()
}
