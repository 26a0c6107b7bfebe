package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/internal/config"
	"github.com/temcen/anirec/internal/database"
	"github.com/temcen/anirec/internal/handlers"
	"github.com/temcen/anirec/internal/messaging"
	"github.com/temcen/anirec/internal/middleware"
	"github.com/temcen/anirec/internal/services"
	"github.com/temcen/anirec/internal/validation"
)

type App struct {
	config    *config.Config
	logger    *logrus.Logger
	db        *database.Database
	publisher messaging.Publisher
	services  *services.Services
	handlers  *handlers.Handlers
	router    *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: SetupLogger(&cfg.Logging),
	}

	// Initialize database connections
	db, err := database.New(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	app.publisher = messaging.NewPublisher(&cfg.Kafka, app.logger)

	schemas, err := validation.NewDefaultValidator()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load schemas: %w", err)
	}

	// Initialize services
	app.services = services.New(cfg, app.logger, db, app.publisher)

	// Initialize handlers
	app.handlers = handlers.New(app.logger, app.services)

	// Setup router
	app.router = newRouter(cfg, app.logger, app.handlers, app.services, middleware.NewValidationMiddleware(schemas))

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Logger() *logrus.Logger {
	return a.logger
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	var errs []error
	if err := a.publisher.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing event publisher")
		errs = append(errs, err)
	}

	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing database connections")
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SetupLogger builds a logger from the logging section of the configuration.
func SetupLogger(cfg *config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func newRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	h *handlers.Handlers,
	svc *services.Services,
	vm *middleware.ValidationMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(&cfg.Security.CORS))

	router.GET("/", handlers.Root)
	router.GET("/health", h.Health.Check)

	if cfg.Monitoring.Enabled {
		metricsPath := cfg.Monitoring.MetricsPath
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		router.GET(metricsPath, gin.WrapH(promhttp.Handler()))
	}

	auth := middleware.Auth(svc.Auth, logger)
	rateLimit := middleware.RateLimit(svc.RateLimit, logger)
	pathParams := vm.ValidatePathParams()

	// Path served by the original frontend
	router.GET("/recommend/:userId", pathParams, auth, rateLimit, h.Recommendation.Get)

	api := router.Group("/api/v1")
	{
		recommendations := api.Group("/recommendations")
		{
			recommendations.POST("/preview", auth, rateLimit, vm.ValidatePreview(), h.Recommendation.Preview)
			recommendations.GET("/:userId", pathParams, auth, rateLimit, h.Recommendation.Get)
		}

		users := api.Group("/users/:userId", pathParams, auth, rateLimit)
		{
			users.GET("/ratings", h.Rating.List)
			users.PUT("/ratings", vm.ValidateRating(), h.Rating.Upsert)
			users.DELETE("/ratings/:animeId", h.Rating.Delete)
		}
	}

	return router
}
