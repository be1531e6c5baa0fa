package testutil

import (
	"context"

	"github.com/flexprice/budgetpdf/internal/s3"
	"github.com/stretchr/testify/mock"
)

var _ s3.Service = (*MockS3Service)(nil)

type MockS3Service struct {
	mock.Mock
}

func (m *MockS3Service) UploadDocument(ctx context.Context, document *s3.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockS3Service) GetPresignedUrl(ctx context.Context, id string, docType s3.DocumentType) (string, error) {
	args := m.Called(ctx, id, docType)
	return args.String(0), args.Error(1)
}
