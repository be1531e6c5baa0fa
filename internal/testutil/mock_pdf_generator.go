package testutil

import (
	"context"

	"github.com/flexprice/budgetpdf/internal/domain/budget"
	"github.com/flexprice/budgetpdf/internal/pdf"
	"github.com/stretchr/testify/mock"
)

var _ pdf.Generator = (*MockPDFGenerator)(nil)

type MockPDFGenerator struct {
	mock.Mock
}

// RenderBudgetPdf implements pdf.Generator.
func (m *MockPDFGenerator) RenderBudgetPdf(ctx context.Context, doc *budget.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func NewMockPDFGenerator() *MockPDFGenerator {
	return &MockPDFGenerator{}
}
