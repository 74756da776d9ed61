package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"motoride/internal/adapter/api"
	"motoride/internal/adapter/api/handler"
	apimiddleware "motoride/internal/adapter/api/middleware"
	"motoride/internal/adapter/api/router"
	"motoride/internal/adapter/catalog"
	"motoride/internal/domain/service"
	"motoride/internal/infrastructure/ratelimit"
	"motoride/internal/infrastructure/websocket"
	"motoride/internal/storefront"
	"motoride/internal/storefront/checkout"
	"motoride/internal/usecase"
	"motoride/pkg/config"
	"motoride/pkg/logger"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "Apply the SQL schema before serving")
}

// externalSource picks the secondary listing source: the upstream catalog when CATALOG_URL
// is set, the built-in one otherwise.
func externalSource(cfg *config.Config) service.CatalogSource {
	if cfg.CatalogURL == "" {
		return catalog.DefaultStaticSource()
	}
	logger.Info("Using external catalog at %s", cfg.CatalogURL)
	limiter := ratelimit.NewRateLimiter(cfg.CatalogRateLimit, cfg.CatalogBurst)
	return catalog.NewRateLimitedSource(catalog.NewHTTPSource(cfg.CatalogURL, nil), limiter)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, migrateOnStart)
	if err != nil {
		return err
	}
	defer st.close()

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	listingUseCase := usecase.NewListingUseCase(st.listings)
	aggregateUseCase := usecase.NewAggregateUseCase(st.listings, externalSource(cfg))
	catalogUseCase := usecase.NewCatalogUseCase(catalog.DefaultStaticSource())

	sessions := storefront.NewSessionStore(usecase.BrowseFetcher(listingUseCase), storefront.StoreOptions{
		TTL:      cfg.SessionTTL,
		Notifier: wsManager,
		Payment: checkout.Options{
			Latency: cfg.PaymentLatency,
			IDs:     service.NewUUIDGenerator(),
		},
	})
	sessions.StartEvictionRoutine(ctx, time.Minute)
	storefrontUseCase := usecase.NewStorefrontUseCase(sessions, aggregateUseCase)

	handler.Setup(listingUseCase, aggregateUseCase, catalogUseCase, storefrontUseCase, wsManager)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	apiLimiter := ratelimit.NewRateLimiter(cfg.APIRateLimit, cfg.APIRateBurst)
	apiLimiter.StartCleanupRoutine(ctx, time.Minute, 10*time.Minute)

	router.Setup(e, apimiddleware.RateLimit(apiLimiter))

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
