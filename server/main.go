package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venuelayout/api/routes"
	"venuelayout/internal/layouts"
	"venuelayout/internal/shared/config"
	"venuelayout/internal/shared/database"
	"venuelayout/internal/shared/middleware"
	"venuelayout/internal/templates"
	"venuelayout/pkg/logger"
	"venuelayout/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load environment variables
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		// Check if we're in production/container mode
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Initialize DB
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.Redis != nil {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:        cfg.RateLimit.Enabled,
			WindowDuration: cfg.RateLimit.WindowDuration,
			PublicRequests: cfg.RateLimit.PublicRequests,
			AdminRequests:  cfg.RateLimit.AdminRequests,
			SaveRequests:   cfg.RateLimit.SaveRequests,
			HealthRequests: cfg.RateLimit.HealthRequests,
			WhitelistedIPs: cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("save_requests", cfg.RateLimit.SaveRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Layout event producer
	publisher := newEventPublisher(cfg, appLogger)
	defer publisher.Close()

	// Template catalog, optionally hot-reloaded from disk
	backgroundCtx, backgroundCancel := context.WithCancel(context.Background())
	defer backgroundCancel()

	catalog, err := templates.NewDefaultCatalog()
	if err != nil {
		appLogger.Error("Failed to build builtin templates", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Templates.Watch {
		watcher, err := templates.NewWatcher(cfg.Templates.Dir, catalog, cfg.Templates.ReloadDebounce)
		if err == nil {
			err = watcher.Start(backgroundCtx)
		}
		if err != nil {
			appLogger.Error("Template watcher not started", slog.Any("error", err))
		} else {
			defer watcher.Stop()
		}
	} else if fileTemplates, err := templates.LoadDir(cfg.Templates.Dir); err != nil {
		appLogger.Error("Failed to load layout templates", slog.Any("error", err))
	} else {
		catalog.SetFileTemplates(fileTemplates)
		appLogger.LogTemplatesLoaded(backgroundCtx, cfg.Templates.Dir, len(fileTemplates))
	}

	// Setup router with rate limiter
	router := setupRouter(cfg, db, rateLimiter, publisher, catalog)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_status", fmt.Sprintf("http://localhost:%s/status", cfg.Port)),
			slog.String("api_version", cfg.APIVersion),
			slog.String("build_version", Version),
			slog.String("build_time", BuildTime),
			slog.String("git_commit", GitCommit),
			slog.Bool("redis_cache", (db.Redis != nil)),
			slog.Bool("rate_limiting", rateLimiter != nil),
			slog.Bool("kafka_events", cfg.Kafka.Enabled),
			slog.Int("templates", catalog.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func newEventPublisher(cfg *config.Config, appLogger *logger.Logger) layouts.EventPublisher {
	if !cfg.Kafka.Enabled {
		appLogger.Info("Kafka layout events disabled")
		return layouts.NoopPublisher{}
	}

	producerConfig := layouts.DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.Topic = cfg.Kafka.LayoutTopic
	producerConfig.ClientID = cfg.Kafka.ClientID

	publisher, err := layouts.NewKafkaEventPublisher(producerConfig)
	if err != nil {
		appLogger.Error("Failed to initialize Kafka producer, continuing without layout events", slog.Any("error", err))
		return layouts.NoopPublisher{}
	}
	appLogger.Info("Kafka layout event producer initialized",
		slog.String("topic", cfg.Kafka.LayoutTopic),
		slog.Any("brokers", cfg.Kafka.Brokers),
	)
	return publisher
}

func setupRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter, publisher layouts.EventPublisher, catalog templates.Provider) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(middleware.RequestLogger(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(middleware.CORS(cfg))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, db, publisher, catalog)
	appRouter.SetupRoutes(engine)

	return engine
}
