package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/adcraft/server/internal/module/ad"
	"github.com/adcraft/server/internal/module/ad/prompt"
	"github.com/adcraft/server/internal/module/image"
	"github.com/adcraft/server/internal/provider"
	"github.com/adcraft/server/internal/shared/config"
	"github.com/adcraft/server/internal/shared/logger"
	"github.com/adcraft/server/internal/shared/metrics"
	"github.com/adcraft/server/internal/shared/middleware"
	"github.com/adcraft/server/internal/shared/ratelimit"
)

// App wires configuration, providers, services and handlers into a
// runnable HTTP application.
type App struct {
	config    *config.Config
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger
	metrics   *metrics.Metrics

	limiter *ratelimit.SlidingWindow

	adHandler    *ad.Handler
	imageHandler *image.Handler
}

// New creates a new application instance. Every dependency is built
// here, exactly once, and handed down explicitly.
func New(cfg *config.Config) (*App, error) {
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	zapLog, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init zap logger: %w", err)
	}

	app := &App{
		config:    cfg,
		logger:    log,
		zapLogger: zapLog,
		metrics:   metrics.New("adcraft"),
		limiter:   ratelimit.NewSlidingWindow(),
	}

	if err := app.initModules(); err != nil {
		return nil, fmt.Errorf("init modules: %w", err)
	}

	app.router = app.setupRouter()

	return app, nil
}

// initModules builds the generation providers and the feature modules
// on top of them.
func (a *App) initModules() error {
	textClient := provider.NewOpenAIClient(a.config.AI.Text)
	imageClient := provider.NewGeminiClient(a.config.AI.Image)

	registry := prompt.NewRegistry()

	adService := ad.NewService(registry, textClient, a.zapLogger, a.metrics)
	a.adHandler = ad.NewHandler(adService)

	store, err := image.NewStore(a.config.Upload.Dir)
	if err != nil {
		return fmt.Errorf("init image store: %w", err)
	}

	imageService := image.NewService(imageClient, store, a.config.Upload, a.config.API.Prefix, a.zapLogger, a.metrics)
	a.imageHandler = image.NewHandler(imageService)

	return nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	r.Use(middleware.Metrics(a.metrics))

	corsCfg := middleware.DefaultCORSConfig()
	if len(a.config.CORS.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = a.config.CORS.AllowOrigins
	}
	r.Use(middleware.CORS(corsCfg))

	r.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"version":   a.config.API.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(a.config.API.Prefix)

	// Generation endpoints consume quota; image retrieval does not.
	limited := api.Group("")
	limited.Use(middleware.RateLimit(a.limiter, middleware.RateLimitConfig{
		Limit:   a.config.RateLimit.Requests,
		Window:  a.config.RateLimit.Window,
		Metrics: a.metrics,
	}))

	a.adHandler.RegisterRoutes(limited)
	a.imageHandler.RegisterRoutes(limited, api)

	return r
}

// Router returns the configured HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop flushes buffered log entries before shutdown.
func (a *App) Stop() {
	if a.zapLogger != nil {
		_ = a.zapLogger.Sync()
	}
}
