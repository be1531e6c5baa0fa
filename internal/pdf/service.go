package pdf

import (
	"context"

	"github.com/flexprice/budgetpdf/internal/domain/budget"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/flexprice/budgetpdf/internal/logger"
)

// Generator defines the interface for PDF generation operations
type Generator interface {
	RenderBudgetPdf(ctx context.Context, doc *budget.Document) ([]byte, error)
}

type Config struct {
	PaperSize PaperSize
	// NewMetrics builds the metrics for one render. Metrics are stateful,
	// so they are never shared between renders.
	NewMetrics func() Metrics
}

func DefaultConfig() Config {
	return Config{
		PaperSize:  LetterSize,
		NewMetrics: NewMetrics,
	}
}

type service struct {
	config Config
	logger *logger.Logger
}

// NewGenerator creates a new PDF service
func NewGenerator(logger *logger.Logger) Generator {
	return NewGeneratorWithConfig(DefaultConfig(), logger)
}

func NewGeneratorWithConfig(config Config, logger *logger.Logger) Generator {
	return &service{
		config: config,
		logger: logger,
	}
}

// RenderBudgetPdf lays the budget out and serializes it. Nothing is returned
// unless the whole document was produced.
func (s *service) RenderBudgetPdf(ctx context.Context, doc *budget.Document) ([]byte, error) {
	if doc == nil || len(doc.Items) == 0 {
		return nil, ierr.NewError("budget has no items").
			WithHint("Budget has no items").
			Mark(ierr.ErrValidation)
	}

	logo, err := DecodeLogo(doc.Logo)
	if err != nil {
		s.logger.Warnw("logo decode failure, rendering without logo",
			"budget_number", doc.Number,
			"logo_bytes", len(doc.Logo),
			"error", err)
		logo = nil
	}

	comp, err := s.compose(doc, logo)
	if err != nil {
		s.logger.Errorw("failed to compose budget pdf", "budget_number", doc.Number, "error", err)
		return nil, err
	}

	data, err := Write(comp)
	if err != nil || len(data) == 0 {
		s.logger.Errorw("failed to write budget pdf", "budget_number", doc.Number, "error", err)
		if err == nil {
			return nil, ierr.NewError("empty pdf output").
				WithHint("Failed to render budget PDF").
				Mark(ierr.ErrRenderFailed)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to render budget PDF").
			Mark(ierr.ErrRenderFailed)
	}

	s.logger.Debugw("rendered budget pdf",
		"budget_number", doc.Number,
		"pages", len(comp.Pages),
		"items", len(doc.Items),
		"bytes", len(data))

	return data, nil
}

func (s *service) compose(doc *budget.Document, logo *Logo) (comp *Composition, err error) {
	defer recoverRenderFailure(&err)
	return NewComposer(s.config.NewMetrics(), s.config.PaperSize).Compose(doc, logo)
}
