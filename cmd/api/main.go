package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/momentohq/doc-sharing-app/internal/auth"
	"github.com/momentohq/doc-sharing-app/internal/cache"
	"github.com/momentohq/doc-sharing-app/internal/config"
	handlers "github.com/momentohq/doc-sharing-app/internal/http/handler"
	"github.com/momentohq/doc-sharing-app/internal/http/middleware"
	"github.com/momentohq/doc-sharing-app/internal/otel"
	"github.com/momentohq/doc-sharing-app/internal/service"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()
	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Cache client authenticated with the server's API key, plus a connector
	// that opens token-scoped read connections for share-link recipients.
	cacheClient, err := cache.NewMomento(cfg.Momento)
	if err != nil {
		log.Fatalf("failed to connect to cache: %v", err)
	}
	defer cacheClient.Close()
	connector := cache.NewMomentoConnector(cfg.Momento)

	tokenVendor, err := auth.NewMomentoVendor(cfg.Momento)
	if err != nil {
		log.Fatalf("failed to initialize token vendor: %v", err)
	}

	tokenSvc := service.NewTokenService(cacheClient, tokenVendor, userTokenTTL(cfg))
	docSvc := service.NewDocumentService(cacheClient, connector, tokenSvc, cfg.DomainName, cfg.Limits)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.Limits.MaxContentBytes) * 2, // headroom for multipart framing
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, cacheClient, tokenSvc, docSvc)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func userTokenTTL(cfg *config.AppConfig) time.Duration {
	return time.Duration(cfg.Limits.UserTokenMinutes) * time.Minute
}
