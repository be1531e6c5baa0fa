package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/flexprice/budgetpdf/internal/api"
	v1 "github.com/flexprice/budgetpdf/internal/api/v1"
	"github.com/flexprice/budgetpdf/internal/auth"
	"github.com/flexprice/budgetpdf/internal/cache"
	"github.com/flexprice/budgetpdf/internal/config"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/flexprice/budgetpdf/internal/pdf"
	"github.com/flexprice/budgetpdf/internal/postgres"
	"github.com/flexprice/budgetpdf/internal/pyroscope"
	"github.com/flexprice/budgetpdf/internal/repository"
	"github.com/flexprice/budgetpdf/internal/s3"
	"github.com/flexprice/budgetpdf/internal/sentry"
	"github.com/flexprice/budgetpdf/internal/service"
	"github.com/flexprice/budgetpdf/internal/types"
	"github.com/flexprice/budgetpdf/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,
			pyroscope.NewPyroscopeService,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,

			// Document archive
			s3.NewService,

			// Auth
			auth.NewVerifier,

			// PDF
			pdf.NewGenerator,

			// Repositories
			repository.NewBudgetRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewBudgetService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			pyroscope.RegisterHooks,
			registerDBHooks,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	db *postgres.DB,
	logger *logger.Logger,
	budgetService service.BudgetService,
) api.Handlers {
	return api.Handlers{
		Health: v1.NewHealthHandler(db, logger),
		Budget: v1.NewBudgetHandler(budgetService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger, verifier auth.Verifier) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger, verifier)
}

func registerDBHooks(lc fx.Lifecycle, db *postgres.DB, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("Closing database connections")
			db.Close()
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeAWSLambdaAPI:
		startAWSLambdaAPI(r)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startAWSLambdaAPI(r *gin.Engine) {
	ginLambda := ginadapter.New(r)
	lambda.Start(ginLambda.ProxyWithContext)
}
