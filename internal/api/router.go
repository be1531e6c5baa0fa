package api

import (
	v1 "github.com/flexprice/budgetpdf/internal/api/v1"
	"github.com/flexprice/budgetpdf/internal/auth"
	"github.com/flexprice/budgetpdf/internal/config"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/flexprice/budgetpdf/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health *v1.HealthHandler
	Budget *v1.BudgetHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, verifier auth.Verifier) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.LoggingMiddleware(logger),
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	v1Group.Use(
		middleware.AuthenticateMiddleware(verifier, logger),
		middleware.SentryScopeMiddleware,
	)
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	budgets := router.Group("/budgets")
	{
		budgets.GET("/:id/pdf", handlers.Budget.GetBudgetPDF)
		budgets.POST("/preview", handlers.Budget.PreviewBudgetPDF)
	}
}
