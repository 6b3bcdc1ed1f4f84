package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/taxrenew/backend/docs"
	renewalapp "github.com/taxrenew/backend/internal/application/renewal"
	"github.com/taxrenew/backend/internal/domain/renewal"
	"github.com/taxrenew/backend/internal/domain/shared"
	"github.com/taxrenew/backend/internal/infrastructure/cache"
	"github.com/taxrenew/backend/internal/infrastructure/config"
	"github.com/taxrenew/backend/internal/infrastructure/logger"
	"github.com/taxrenew/backend/internal/infrastructure/persistence"
	"github.com/taxrenew/backend/internal/infrastructure/telemetry"
	"github.com/taxrenew/backend/internal/interfaces/http/handler"
	"github.com/taxrenew/backend/internal/interfaces/http/middleware"
	"github.com/taxrenew/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

//	@title			Vehicle Tax Renewal API
//	@version		1.0
//	@description	Daily outreach queue and notification ledger for vehicle tax renewals.

//	@host		localhost:8080
//	@BasePath	/api/v1

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.NewConfig(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telCfg := telemetry.ConfigFrom(cfg.Telemetry, version)

	providers, err := telemetry.Setup(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log = providers.Logs.Bridge(log, logger.ParseLevel(cfg.Log.Level))

	log.Info("Starting taxrenew backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	meter := providers.Meter.Meter("github.com/taxrenew/backend")

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold))
	db, err := persistence.NewDatabase(ctx, &cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telCfg, "postgresql", log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetrics, err := startDBMetrics(ctx, meter, db, log)
	if err != nil {
		log.Fatal("Failed to initialize database metrics", zap.Error(err))
	}
	defer dbMetrics.Stop()

	renewalMetrics, err := telemetry.NewRenewalMetrics(meter)
	if err != nil {
		log.Fatal("Failed to initialize renewal metrics", zap.Error(err))
	}

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	handlers, err := buildHandlers(cfg, db, renewalMetrics, log)
	if err != nil {
		log.Fatal("Failed to wire renewal services", zap.Error(err))
	}

	engine, rateLimiter, err := buildEngine(cfg, telCfg, meter, idempotencyStore, handlers, log)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}
	if rateLimiter != nil {
		defer rateLimiter.Stop()
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serveErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down telemetry", zap.Error(err))
	}
}

func startDBMetrics(ctx context.Context, meter metric.Meter, db *persistence.Database, log *zap.Logger) (*telemetry.DBMetrics, error) {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, err
	}
	m, err := telemetry.NewDBMetrics(meter, sqlDB, telemetry.DefaultPoolStatsInterval, log)
	if err != nil {
		return nil, err
	}
	if err := db.DB.Use(m); err != nil {
		return nil, err
	}
	m.Start(ctx)
	return m, nil
}

func renewalSettings(cfg config.RenewalConfig) renewalapp.Settings {
	return renewalapp.Settings{
		Policy: renewal.Policy{
			SnapshotCap:           cfg.SnapshotCap,
			EligibilityWindowDays: cfg.EligibilityWindowDays,
			UpcomingLeadDays:      cfg.UpcomingLeadDays,
			RenewalCycleDays:      cfg.RenewalCycleDays,
			Location:              cfg.Location(),
		},
		TrackingTag: cfg.TrackingTag,
	}
}

func buildHandlers(cfg *config.Config, db *persistence.Database, metrics renewalapp.Metrics, log *zap.Logger) (router.Handlers, error) {
	phones, err := renewal.NewPhoneValidator(cfg.Renewal.PhoneRegion)
	if err != nil {
		return router.Handlers{}, err
	}

	settings := renewalSettings(cfg.Renewal)
	clock := renewal.SystemClock(settings.Policy.Zone())

	records := persistence.NewGormTaxRecordRepository(db.DB)
	statuses := persistence.NewGormNotificationStatusRepository(db.DB)
	snapshots := persistence.NewGormSnapshotRepository(db.DB)

	reconciler := renewalapp.NewReconciler(settings.Policy, statuses, metrics, log)
	snapshotSvc := renewalapp.NewSnapshotService(settings, records, statuses, snapshots, reconciler, phones, clock, metrics, log)
	curationSvc := renewalapp.NewCurationService(settings, records, statuses, snapshotSvc, reconciler, clock, metrics, log)

	return router.Handlers{
		DailyNotifications: handler.NewDailyNotificationHandler(snapshotSvc, curationSvc),
		NotificationStatus: handler.NewNotificationStatusHandler(curationSvc),
		Renewals:           handler.NewRenewalHandler(curationSvc),
		Health:             handler.NewHealthHandler(db, version),
	}, nil
}

// buildEngine applies the middleware chain:
// request ID, recovery, tracing, request logging, metrics, security headers,
// CORS, body limit, request deadline and, when enabled, rate limiting.
// /health and /swagger are mounted outside the versioned API.
func buildEngine(
	cfg *config.Config,
	telCfg telemetry.Config,
	meter metric.Meter,
	store shared.IdempotencyStore,
	handlers router.Handlers,
	log *zap.Logger,
) (*gin.Engine, *middleware.RateLimiter, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		return nil, nil, err
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, nil, err
	}

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		return nil, nil, err
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(telCfg.ServiceName, telCfg.TracesEnabled), middleware.SpanTagger())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(httpMetrics)
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitBurst)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
			zap.Int("burst", cfg.HTTP.RateLimitBurst),
		)
	}

	// Health check outside API versioning for load balancers
	engine.GET("/health", handlers.Health.Check)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", middleware.SwaggerAccess(cfg.Swagger.AllowedIPs), ginSwagger.WrapHandler(swaggerFiles.Handler))
		log.Info("API documentation served at /swagger/index.html",
			zap.Strings("allowed_ips", cfg.Swagger.AllowedIPs),
		)
	}

	idempotency := middleware.Idempotency(store, shared.IdempotencyConfig{
		TTL:     cfg.HTTP.IdempotencyTTL,
		Enabled: true,
	}, log)

	mounted := router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.RenewalGroups(handlers, idempotency)...).
		Setup()
	for _, route := range mounted {
		log.Debug("Route mounted",
			zap.String("group", route.Group),
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}

	return engine, rateLimiter, nil
}
