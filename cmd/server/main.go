// Command server runs the ERP HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/erpsuite/backend/internal/bootstrap"
	"github.com/erpsuite/backend/internal/infrastructure/auth"
	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/erpsuite/backend/internal/infrastructure/logger"
	"github.com/erpsuite/backend/internal/infrastructure/migration"
	"github.com/erpsuite/backend/internal/infrastructure/persistence"
	"github.com/erpsuite/backend/internal/infrastructure/telemetry"
	"github.com/erpsuite/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../docs --v3.1

//	@title			ERP Suite API
//	@version		1.0
//	@description	Multi-tenant ERP backend covering inventory, purchasing, sales, finance and HR

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	base, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// OTLP log export wraps the base logger so every component logs to both
	logProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, base)
	if err != nil {
		base.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log := logProvider.Bridge(base)
	defer func() { _ = log.Sync() }()

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Starting ERP backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", bootstrap.Version),
	)

	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}
	log.Info("Database connected", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.DBName))

	if cfg.Database.AutoMigrate {
		if err := migrate(db, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	blacklist, closeBlacklist, err := auth.NewBlacklistFactory(cfg.Redis,
		auth.WithLogger(log),
		auth.WithInMemoryFallback(!cfg.App.IsProduction()),
	).Create(ctx)
	if err != nil {
		log.Fatal("Failed to initialize token blacklist", zap.Error(err))
	}
	defer func() { _ = closeBlacklist() }()

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = telemetry.NewRegistry()
	}
	var limiter *middleware.RateLimiter
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter = middleware.NewRateLimiter(ctx, cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}

	app, err := bootstrap.New(bootstrap.Options{
		Config:      cfg,
		DB:          db.DB,
		Blacklist:   blacklist,
		Registry:    registry,
		AuthLimiter: limiter,
		Logger:      log,
	})
	if err != nil {
		log.Fatal("Failed to build application", zap.Error(err))
	}

	company, err := app.Companies.EnsureDefault(ctx)
	if err != nil {
		log.Fatal("Failed to provision default company", zap.Error(err))
	}
	log.Info("Default company ready", zap.String("code", company.Code), zap.String("company_id", company.ID.String()))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        app.Engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	failed := false
	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server")
	case err := <-serveErr:
		if err != nil {
			log.Error("Server failed", zap.Error(err))
			failed = true
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush traces", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		base.Warn("Failed to flush exported logs", zap.Error(err))
	}

	log.Info("Server exited")
	if failed {
		_ = log.Sync()
		os.Exit(1)
	}
}

func migrate(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, log)
	if err != nil {
		return err
	}
	// not closed: the migrator's Close also closes sqlDB
	return m.Up()
}
