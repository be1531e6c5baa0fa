package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/flexprice/budgetpdf/internal/cache"
	"github.com/flexprice/budgetpdf/internal/domain/budget"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/flexprice/budgetpdf/internal/s3"
	"github.com/flexprice/budgetpdf/internal/types"
)

// BudgetService renders budgets to PDF on behalf of the authenticated user
type BudgetService interface {
	// GetBudgetPDF loads the caller's budget and renders it. When archival is
	// enabled the PDF is also uploaded and URL is set.
	GetBudgetPDF(ctx context.Context, budgetID int64) (*BudgetPDF, error)

	// GetBudgetPDFUrl renders, archives and returns a presigned download URL
	GetBudgetPDFUrl(ctx context.Context, budgetID int64) (string, error)

	// PreviewBudgetPDF renders a document that was never stored
	PreviewBudgetPDF(ctx context.Context, doc *budget.Document) (*BudgetPDF, error)
}

// BudgetPDF is a rendered budget ready to be streamed
type BudgetPDF struct {
	Filename string
	Data     []byte
	URL      string
}

// BudgetFilename is the download name, e.g. orcamento-0007.pdf
func BudgetFilename(number int) string {
	return fmt.Sprintf("orcamento-%04d.pdf", number)
}

type budgetService struct {
	ServiceParams
}

func NewBudgetService(params ServiceParams) BudgetService {
	return &budgetService{
		ServiceParams: params,
	}
}

func (s *budgetService) GetBudgetPDF(ctx context.Context, budgetID int64) (*BudgetPDF, error) {
	doc, err := s.loadDocument(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	data, err := s.render(ctx, doc)
	if err != nil {
		return nil, err
	}

	result := &BudgetPDF{
		Filename: BudgetFilename(doc.Number),
		Data:     data,
	}
	if s.S3 == nil {
		return result, nil
	}

	// archival is best effort here; the caller still gets the bytes
	url, err := s.archive(ctx, budgetID, data)
	if err != nil {
		s.Logger.Warnw("failed to archive budget pdf",
			"budget_id", budgetID,
			"error", err,
		)
		return result, nil
	}
	result.URL = url
	return result, nil
}

func (s *budgetService) GetBudgetPDFUrl(ctx context.Context, budgetID int64) (string, error) {
	if s.S3 == nil {
		return "", ierr.NewError("document archival is disabled").
			WithHint("PDF download links are not available").
			Mark(ierr.ErrValidation)
	}

	doc, err := s.loadDocument(ctx, budgetID)
	if err != nil {
		return "", err
	}

	data, err := s.render(ctx, doc)
	if err != nil {
		return "", err
	}

	return s.archive(ctx, budgetID, data)
}

func (s *budgetService) PreviewBudgetPDF(ctx context.Context, doc *budget.Document) (*BudgetPDF, error) {
	if doc == nil {
		return nil, ierr.NewError("budget document is required").
			WithHint("Budget data is required").
			Mark(ierr.ErrValidation)
	}
	if err := validateItems(doc); err != nil {
		return nil, err
	}

	data, err := s.render(ctx, doc)
	if err != nil {
		return nil, err
	}

	return &BudgetPDF{
		Filename: BudgetFilename(doc.Number),
		Data:     data,
	}, nil
}

func (s *budgetService) loadDocument(ctx context.Context, budgetID int64) (*budget.Document, error) {
	userID := types.GetUserID(ctx)
	if userID == 0 {
		return nil, ierr.NewError("missing user in context").
			WithHint("Authentication required").
			Mark(ierr.ErrPermissionDenied)
	}
	if budgetID <= 0 {
		return nil, ierr.NewErrorf("invalid budget id %d", budgetID).
			WithHint("Invalid budget ID").
			Mark(ierr.ErrValidation)
	}

	doc, err := s.BudgetRepo.GetDocument(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if err := validateItems(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// validateItems rejects budgets the renderer must never see
func validateItems(doc *budget.Document) error {
	if len(doc.Items) == 0 {
		return ierr.NewErrorf("budget %d has no items", doc.Number).
			WithHint("Add at least one item before generating the PDF").
			WithReportableDetails(map[string]interface{}{
				"budget_number": doc.Number,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (s *budgetService) render(ctx context.Context, doc *budget.Document) ([]byte, error) {
	key, cacheable := renderCacheKey(doc)
	cacheable = cacheable && s.Cache != nil
	if cacheable {
		span := cache.StartCacheSpan(ctx, "get", key)
		cached, found := s.Cache.Get(ctx, key)
		if data, ok := cached.([]byte); found && ok {
			cache.FinishSpan(span, true)
			s.Logger.Debugw("budget pdf served from cache", "budget_number", doc.Number)
			// callers own the returned slice
			return bytes.Clone(data), nil
		}
		cache.FinishSpan(span, false)
	}

	if s.Sentry != nil {
		var finish func()
		ctx, finish = s.Sentry.StartRenderSpan(ctx, doc.Number)
		defer finish()
	}

	var data []byte
	var err error
	s.Profiler.TagWrapper(ctx, map[string]string{"operation": "render_budget_pdf"}, func(ctx context.Context) {
		data, err = s.PDFGenerator.RenderBudgetPdf(ctx, doc)
	})
	if err != nil {
		if ierr.IsRenderFailed(err) && s.Sentry != nil {
			s.Sentry.CaptureException(ctx, err)
		}
		s.Logger.Errorw("failed to render budget pdf",
			"budget_number", doc.Number,
			"error", err,
		)
		return nil, err
	}

	if cacheable {
		s.Cache.Set(ctx, key, bytes.Clone(data), 0)
	}

	s.Logger.Debugw("rendered budget pdf",
		"budget_number", doc.Number,
		"bytes", len(data),
	)
	return data, nil
}

// renderCacheKey fingerprints the full document. Rendering is deterministic,
// so equal documents always produce equal bytes.
func renderCacheKey(doc *budget.Document) (string, bool) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(raw)
	return cache.GenerateKey(cache.PrefixBudgetPDF, hex.EncodeToString(sum[:])), true
}

// archiveKey scopes archived documents by owner
func archiveKey(userID, budgetID int64) string {
	return "orcamento-" + strconv.FormatInt(userID, 10) + "-" + strconv.FormatInt(budgetID, 10)
}

func (s *budgetService) archive(ctx context.Context, budgetID int64, data []byte) (string, error) {
	key := archiveKey(types.GetUserID(ctx), budgetID)

	if err := s.S3.UploadDocument(ctx, s3.NewBudgetDocument(key, data)); err != nil {
		return "", err
	}

	url, err := s.S3.GetPresignedUrl(ctx, key, s3.DocumentTypeBudget)
	if err != nil {
		return "", err
	}
	return url, nil
}
