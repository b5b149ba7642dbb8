package router

import (
	"net/http"

	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/erpsuite/backend/internal/infrastructure/logger"
	"github.com/erpsuite/backend/internal/infrastructure/telemetry"
	"github.com/erpsuite/backend/internal/interfaces/http/dto"
	"github.com/erpsuite/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/erpsuite/backend/docs"
)

// NewEngine builds the gin engine with the global middleware chain, the
// operational endpoints and every API route. reg may be nil when metrics
// are disabled.
func NewEngine(cfg *config.Config, h Handlers, g Guards, reg *prometheus.Registry, log *zap.Logger) (*gin.Engine, error) {
	engine := gin.New()
	// both slash variants are registered explicitly; a redirect would
	// turn a POST into a GET in most clients
	engine.RedirectTrailingSlash = false
	engine.HandleMethodNotAllowed = false
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}
	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanAttributes())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig(cfg.App.IsProduction())))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig(cfg.HTTP.CORSOrigins)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.Metrics.Enabled && reg != nil {
		engine.Use(middleware.Metrics(telemetry.NewHTTPMetrics(reg)))
		engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	}

	engine.GET("/health", h.System.Health)
	engine.GET("/swagger/*any", middleware.SwaggerGate(cfg.Swagger.Enabled), ginSwagger.WrapHandler(swaggerFiles.Handler))

	r := NewRouter(engine, WithAPIVersion("v1"))
	RegisterAPI(r, h, g)
	r.Setup()

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.ErrCodeNotFound, "Route not found", c.GetString(logger.GinRequestIDKey)))
	})

	log.Info("HTTP routes registered", zap.Int("routes", len(engine.Routes())))
	return engine, nil
}
