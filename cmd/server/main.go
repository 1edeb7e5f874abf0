// Storefront server entry point. Wires configuration, persistence,
// caching, telemetry and the HTTP layer, then serves until SIGINT/SIGTERM.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/printing"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry providers (no-ops when telemetry is disabled)
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()
	if loggerProvider.IsEnabled() {
		log = loggerProvider.BridgeZapLogger(log, cfg.Telemetry.ServiceName)
	}

	// Continuous profiling (cfg.Profiling.Enabled gates it)
	profiler, err := telemetry.NewProfiler(cfg.Profiling, cfg.App.Name, log)
	if err != nil {
		log.Warn("Failed to start profiler", zap.Error(err))
	} else if profiler.IsEnabled() {
		defer func() {
			if err := profiler.Stop(); err != nil {
				log.Error("Error stopping profiler", zap.Error(err))
			}
		}()
		tracerProvider.EnableSpanProfiles()
	}

	storeMetrics, err := telemetry.NewStoreMetrics(meterProvider)
	if err != nil {
		log.Fatal("Failed to initialize store metrics", zap.Error(err))
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.DBTraceEnabled {
		if err := db.DB.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.Database.DBName))); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Catalog listing cache (Redis when enabled, in-process fallback otherwise)
	catalogCache := cache.NewCatalogCache(cfg.Redis, log)
	defer func() {
		if err := catalogCache.Close(); err != nil {
			log.Error("Error closing catalog cache", zap.Error(err))
		}
	}()

	// Object storage for product thumbnails
	var objectStorage catalogapp.ObjectStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		bucketCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := s3Storage.EnsureBucket(bucketCtx); err != nil {
			log.Warn("Failed to ensure storage bucket", zap.Error(err))
		}
		cancel()
		objectStorage = s3Storage
		log.Info("Object storage enabled", zap.String("bucket", s3Storage.GetBucket()))
	} else {
		objectStorage = storage.NewStubObjectStorage()
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Product creations feed business counters
	eventBus.Subscribe(catalogapp.NewProductMetricsHandler(storeMetrics))

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo, catalogCache, objectStorage, eventBus, log)
	cartService := cartapp.NewCartService(cartRepo, ticketRepo, productRepo, eventBus, storeMetrics, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	// PDF receipt renderer
	pdfRenderer := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		Timeout:   cfg.Printing.Timeout,
		RemoteURL: cfg.Printing.RemoteURL,
		NoSandbox: cfg.Printing.NoSandbox,
		Logger:    log,
	})

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, log)
	cartHandler := handler.NewCartHandler(cartService, log)
	authHandler := handler.NewAuthHandler(authService, jwtService, log)
	receiptHandler := handler.NewReceiptHandler(cartService, pdfRenderer, log)
	systemHandler := handler.NewSystemHandler(db.DB)
	pageHandler := handler.NewPageHandler(productService, cartService, log)
	feedHandler := handler.NewProductFeedHandler(productService, handler.WithFeedLogger(log))

	// The feed handler listens on the bus and pushes catalog updates to
	// connected SSE clients
	if err := feedHandler.Start(eventBus); err != nil {
		log.Fatal("Failed to start product feed", zap.Error(err))
	}
	defer feedHandler.Stop()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OTel server spans (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.SecurityHeaders())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Server-rendered page templates
	engine.LoadHTMLGlob("web/templates/*.html")

	// Health probes live outside the API group
	engine.GET("/healthz", systemHandler.Healthz)
	engine.GET("/readyz", systemHandler.Readyz)

	// Session cookie carries the visitor's cart across page loads
	sessionStore := middleware.NewSessionStore(cfg.Session)

	r := router.NewRouter(engine,
		router.WithAPIMiddleware(middleware.OptionalJWTAuth(jwtService)),
		router.WithPageMiddleware(middleware.CartSession(sessionStore, cfg.Session, cartService, log)),
	)
	r.Register(productHandler).
		Register(cartHandler).
		Register(authHandler).
		Register(receiptHandler).
		Register(feedHandler).
		Register(systemHandler).
		RegisterPages(pageHandler)
	r.Setup()

	// Create HTTP server with config. WriteTimeout stays unset because the
	// product feed holds its response open indefinitely.
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
