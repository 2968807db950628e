// @title Achadoos Storefront API
// @version 1.0
// @description Read-only product catalogue for the storefront
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LuizVictorr/Achadoos-Amazon/catalog"
	"github.com/LuizVictorr/Achadoos-Amazon/config"
	"github.com/LuizVictorr/Achadoos-Amazon/controllers/health_controller"
	"github.com/LuizVictorr/Achadoos-Amazon/controllers/storefront/page_controller"
	"github.com/LuizVictorr/Achadoos-Amazon/controllers/storefront/product_controller"
	_ "github.com/LuizVictorr/Achadoos-Amazon/docs"
	"github.com/LuizVictorr/Achadoos-Amazon/docstore"
	"github.com/LuizVictorr/Achadoos-Amazon/logger"
	"github.com/LuizVictorr/Achadoos-Amazon/metrics"
	"github.com/LuizVictorr/Achadoos-Amazon/middleware"
	"github.com/LuizVictorr/Achadoos-Amazon/routes/storefront_routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "storefront:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the document store
	store, err := config.InitStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer config.CloseStore(store, log)

	// Redis connection (optional, rate limiting only)
	rdb, err := config.ConnectRedis(ctx, cfg, log)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	router := newRouter(dependencies{
		cfg:     cfg,
		log:     log,
		store:   store,
		redis:   rdb,
		metrics: metrics.NewRegistry(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 server is running", zap.String("addr", "http://localhost:"+cfg.Port), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type dependencies struct {
	cfg     *config.Config
	log     *zap.Logger
	store   docstore.Store
	redis   *redis.Client
	metrics *metrics.Registry
}

func newRouter(deps dependencies) *gin.Engine {
	cfg := deps.cfg

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(deps.log),
		middleware.Metrics(deps.metrics),
		cors.New(corsConfig(cfg.AllowedOrigins)),
	)
	router.SetHTMLTemplate(page_controller.MustTemplates())

	loader := catalog.NewLoader(deps.store, deps.log).WithRecorder(deps.metrics)
	match := catalog.MatchOptions{FoldDiacritics: cfg.FoldDiacritics}

	// Register API routes
	api := router.Group("/api/v1")
	if deps.redis != nil {
		api.Use(middleware.RateLimiter(deps.redis, cfg.RateLimitRequests, cfg.RateLimitWindow, deps.log))
	} else {
		api.Use(middleware.LocalRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}
	storefront_routes.SetupStorefrontRoutes(api, product_controller.New(loader, deps.log, product_controller.Options{
		PageSize:     cfg.PageSize,
		Match:        match,
		StoreContext: cfg.WithTimeout,
	}))

	// HTML storefront
	storefront_routes.SetupPageRoutes(router, page_controller.New(loader, deps.log, page_controller.Options{
		PageSize:     cfg.PageSize,
		Match:        match,
		StoreContext: cfg.WithTimeout,
	}))
	storefront_routes.SetupHealthRoutes(router, health_controller.New(deps.store, deps.redis, cfg.StoreTimeout, deps.log))

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", gin.WrapH(deps.metrics.Handler()))
	return router
}

func corsConfig(origins []string) cors.Config {
	corsCfg := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			corsCfg.AllowOrigins = nil
			corsCfg.AllowAllOrigins = true
			break
		}
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	return corsCfg
}
