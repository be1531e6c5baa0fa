package service

import (
	"github.com/flexprice/budgetpdf/internal/cache"
	"github.com/flexprice/budgetpdf/internal/config"
	"github.com/flexprice/budgetpdf/internal/domain/budget"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/flexprice/budgetpdf/internal/pdf"
	"github.com/flexprice/budgetpdf/internal/pyroscope"
	"github.com/flexprice/budgetpdf/internal/s3"
	"github.com/flexprice/budgetpdf/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	PDFGenerator pdf.Generator

	// S3 is nil when document archival is disabled
	S3 s3.Service

	// Monitoring
	Sentry   *sentry.Service
	Profiler *pyroscope.Service

	// Cache holds rendered PDFs; nil disables it
	Cache cache.Cache

	// Repositories
	BudgetRepo budget.Repository
}

// NewServiceParams creates a new ServiceParams instance
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	pdfGenerator pdf.Generator,
	s3 s3.Service,
	sentry *sentry.Service,
	profiler *pyroscope.Service,
	cache cache.Cache,
	budgetRepo budget.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		PDFGenerator: pdfGenerator,
		S3:           s3,
		Sentry:       sentry,
		Profiler:     profiler,
		Cache:        cache,
		BudgetRepo:   budgetRepo,
	}
}
