package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/flexprice/budgetpdf/internal/cache"
	"github.com/flexprice/budgetpdf/internal/config"
	"github.com/flexprice/budgetpdf/internal/domain/budget"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/flexprice/budgetpdf/internal/s3"
	"github.com/flexprice/budgetpdf/internal/sentry"
	"github.com/flexprice/budgetpdf/internal/testutil"
	"github.com/flexprice/budgetpdf/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testUserID   int64 = 42
	testBudgetID int64 = 9
)

var fakePDF = []byte("%PDF-1.3 fake")

type BudgetServiceSuite struct {
	suite.Suite
	ctx       context.Context
	store     *testutil.InMemoryBudgetStore
	generator *testutil.MockPDFGenerator
	params    ServiceParams
}

func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceSuite))
}

func (s *BudgetServiceSuite) SetupTest() {
	s.ctx = types.SetUserID(context.Background(), testUserID)
	s.store = testutil.NewInMemoryBudgetStore()
	s.generator = testutil.NewMockPDFGenerator()

	cfg := config.GetDefaultConfig()
	s.params = ServiceParams{
		Logger:       logger.NewNoop(),
		Config:       cfg,
		PDFGenerator: s.generator,
		Sentry:       sentry.NewSentryService(cfg, logger.NewNoop()),
		BudgetRepo:   s.store,
	}

	s.Require().NoError(s.store.Add(s.ctx, testUserID, testBudgetID, testutil.SampleBudget(7, 3)))
}

func (s *BudgetServiceSuite) service() BudgetService {
	return NewBudgetService(s.params)
}

func (s *BudgetServiceSuite) TestGetBudgetPDF() {
	s.generator.On("RenderBudgetPdf", mock.Anything, mock.MatchedBy(func(doc *budget.Document) bool {
		return doc.Number == 7 && len(doc.Items) == 3
	})).Return(fakePDF, nil).Once()

	result, err := s.service().GetBudgetPDF(s.ctx, testBudgetID)
	s.Require().NoError(err)
	s.Equal("orcamento-0007.pdf", result.Filename)
	s.Equal(fakePDF, result.Data)
	s.Empty(result.URL)
	s.generator.AssertExpectations(s.T())
}

func (s *BudgetServiceSuite) TestGetBudgetPDF_Errors() {
	empty := testutil.SampleBudget(8, 0)
	s.Require().NoError(s.store.Add(s.ctx, testUserID, 10, empty))

	testCases := []struct {
		name     string
		ctx      context.Context
		budgetID int64
		check    func(error) bool
	}{
		{
			name:     "anonymous",
			ctx:      context.Background(),
			budgetID: testBudgetID,
			check:    ierr.IsPermissionDenied,
		},
		{
			name:     "invalid_id",
			ctx:      s.ctx,
			budgetID: 0,
			check:    ierr.IsValidation,
		},
		{
			name:     "other_users_budget",
			ctx:      types.SetUserID(context.Background(), testUserID+1),
			budgetID: testBudgetID,
			check:    ierr.IsNotFound,
		},
		{
			name:     "missing",
			ctx:      s.ctx,
			budgetID: 999,
			check:    ierr.IsNotFound,
		},
		{
			name:     "no_items",
			ctx:      s.ctx,
			budgetID: 10,
			check:    ierr.IsValidation,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result, err := s.service().GetBudgetPDF(tc.ctx, tc.budgetID)
			s.Nil(result)
			s.Require().Error(err)
			s.True(tc.check(err), err.Error())
		})
	}

	s.generator.AssertNotCalled(s.T(), "RenderBudgetPdf", mock.Anything, mock.Anything)
}

func (s *BudgetServiceSuite) TestGetBudgetPDF_RenderFailed() {
	renderErr := ierr.NewError("boom").Mark(ierr.ErrRenderFailed)
	s.generator.On("RenderBudgetPdf", mock.Anything, mock.Anything).Return(nil, renderErr).Once()

	result, err := s.service().GetBudgetPDF(s.ctx, testBudgetID)
	s.Nil(result)
	s.True(ierr.IsRenderFailed(err))
}

func (s *BudgetServiceSuite) TestGetBudgetPDF_Archives() {
	store := &testutil.MockS3Service{}
	s.params.S3 = store

	s.generator.On("RenderBudgetPdf", mock.Anything, mock.Anything).Return(fakePDF, nil).Once()
	store.On("UploadDocument", mock.Anything, mock.MatchedBy(func(doc *s3.Document) bool {
		return doc.Key == "orcamento-42-9" && doc.Type == s3.DocumentTypeBudget
	})).Return(nil).Once()
	store.On("GetPresignedUrl", mock.Anything, "orcamento-42-9", s3.DocumentTypeBudget).
		Return("https://bucket.example/orcamento-42-9.pdf", nil).Once()

	result, err := s.service().GetBudgetPDF(s.ctx, testBudgetID)
	s.Require().NoError(err)
	s.Equal("https://bucket.example/orcamento-42-9.pdf", result.URL)
	store.AssertExpectations(s.T())
}

func (s *BudgetServiceSuite) TestGetBudgetPDF_ArchiveFailureStillReturnsPDF() {
	store := &testutil.MockS3Service{}
	s.params.S3 = store

	s.generator.On("RenderBudgetPdf", mock.Anything, mock.Anything).Return(fakePDF, nil).Once()
	store.On("UploadDocument", mock.Anything, mock.Anything).
		Return(ierr.NewError("s3 down").Mark(ierr.ErrHTTPClient)).Once()

	result, err := s.service().GetBudgetPDF(s.ctx, testBudgetID)
	s.Require().NoError(err)
	s.Equal(fakePDF, result.Data)
	s.Empty(result.URL)
	store.AssertNotCalled(s.T(), "GetPresignedUrl", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BudgetServiceSuite) TestGetBudgetPDFUrl() {
	url, err := s.service().GetBudgetPDFUrl(s.ctx, testBudgetID)
	s.Empty(url)
	s.True(ierr.IsValidation(err))

	store := &testutil.MockS3Service{}
	s.params.S3 = store
	s.generator.On("RenderBudgetPdf", mock.Anything, mock.Anything).Return(fakePDF, nil).Once()
	store.On("UploadDocument", mock.Anything, mock.Anything).Return(nil).Once()
	store.On("GetPresignedUrl", mock.Anything, "orcamento-42-9", s3.DocumentTypeBudget).
		Return("https://bucket.example/x.pdf", nil).Once()

	url, err = s.service().GetBudgetPDFUrl(s.ctx, testBudgetID)
	s.Require().NoError(err)
	s.Equal("https://bucket.example/x.pdf", url)

	store.On("UploadDocument", mock.Anything, mock.Anything).Return(errors.New("denied")).Once()
	s.generator.On("RenderBudgetPdf", mock.Anything, mock.Anything).Return(fakePDF, nil).Once()
	_, err = s.service().GetBudgetPDFUrl(s.ctx, testBudgetID)
	s.Error(err)
}

func (s *BudgetServiceSuite) TestPreviewBudgetPDF() {
	doc := testutil.SampleBudget(12, 2)
	s.generator.On("RenderBudgetPdf", mock.Anything, doc).Return(fakePDF, nil).Once()

	// preview needs no user and no repository
	result, err := s.service().PreviewBudgetPDF(context.Background(), doc)
	s.Require().NoError(err)
	s.Equal("orcamento-0012.pdf", result.Filename)

	_, err = s.service().PreviewBudgetPDF(context.Background(), nil)
	s.True(ierr.IsValidation(err))

	_, err = s.service().PreviewBudgetPDF(context.Background(), testutil.SampleBudget(13, 0))
	s.True(ierr.IsValidation(err))
}

func (s *BudgetServiceSuite) TestRender_CachesByDocument() {
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = true
	s.params.Cache = cache.NewInMemoryCache(cfg, logger.NewNoop())

	s.generator.On("RenderBudgetPdf", mock.Anything, mock.Anything).Return(fakePDF, nil).Once()

	first, err := s.service().GetBudgetPDF(s.ctx, testBudgetID)
	s.Require().NoError(err)
	second, err := s.service().GetBudgetPDF(s.ctx, testBudgetID)
	s.Require().NoError(err)
	s.Equal(first.Data, second.Data)
	s.generator.AssertNumberOfCalls(s.T(), "RenderBudgetPdf", 1)

	// a different document is a different key
	other := []byte("%PDF-1.3 other")
	s.generator.On("RenderBudgetPdf", mock.Anything, mock.Anything).Return(other, nil).Once()
	result, err := s.service().PreviewBudgetPDF(context.Background(), testutil.SampleBudget(30, 1))
	s.Require().NoError(err)
	s.Equal(other, result.Data)
	s.generator.AssertNumberOfCalls(s.T(), "RenderBudgetPdf", 2)
}

func (s *BudgetServiceSuite) TestRender_CachedBytesAreCopies() {
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = true
	s.params.Cache = cache.NewInMemoryCache(cfg, logger.NewNoop())

	rendered := []byte("%PDF-1.3 fresh")
	s.generator.On("RenderBudgetPdf", mock.Anything, mock.Anything).Return(rendered, nil).Once()

	first, err := s.service().GetBudgetPDF(s.ctx, testBudgetID)
	s.Require().NoError(err)
	// neither the generator's slice nor a caller's copy may reach the cache
	rendered[0] = 'X'
	first.Data[1] = 'X'

	second, err := s.service().GetBudgetPDF(s.ctx, testBudgetID)
	s.Require().NoError(err)
	s.Equal([]byte("%PDF-1.3 fresh"), second.Data)
	second.Data[2] = 'X'

	third, err := s.service().GetBudgetPDF(s.ctx, testBudgetID)
	s.Require().NoError(err)
	s.Equal([]byte("%PDF-1.3 fresh"), third.Data)
	s.generator.AssertNumberOfCalls(s.T(), "RenderBudgetPdf", 1)
}

func TestRenderCacheKey(t *testing.T) {
	a, ok := renderCacheKey(testutil.SampleBudget(1, 2))
	assert.True(t, ok)
	b, _ := renderCacheKey(testutil.SampleBudget(1, 2))
	c, _ := renderCacheKey(testutil.SampleBudget(2, 2))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "budgetpdf:v1:"))
}

func TestBudgetFilename(t *testing.T) {
	assert.Equal(t, "orcamento-0007.pdf", BudgetFilename(7))
	assert.Equal(t, "orcamento-0123.pdf", BudgetFilename(123))
	assert.Equal(t, "orcamento-12345.pdf", BudgetFilename(12345))
}
