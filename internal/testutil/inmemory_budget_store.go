package testutil

import (
	"context"
	"fmt"

	"github.com/flexprice/budgetpdf/internal/domain/budget"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
)

var _ budget.Repository = (*InMemoryBudgetStore)(nil)

// InMemoryBudgetStore implements budget.Repository. Documents are keyed by
// owner and budget ID, so lookups are scoped the same way the SQL one is.
type InMemoryBudgetStore struct {
	*InMemoryStore[*budget.Document]
}

func NewInMemoryBudgetStore() *InMemoryBudgetStore {
	return &InMemoryBudgetStore{
		InMemoryStore: NewInMemoryStore[*budget.Document](),
	}
}

func budgetKey(userID, budgetID int64) string {
	return fmt.Sprintf("%d/%d", userID, budgetID)
}

// copyDocument returns a copy that shares nothing mutable with doc
func copyDocument(doc *budget.Document) *budget.Document {
	if doc == nil {
		return nil
	}
	out := *doc
	if doc.Logo != nil {
		out.Logo = append([]byte(nil), doc.Logo...)
	}
	out.Items = append([]budget.LineItem(nil), doc.Items...)
	return &out
}

// Add stores doc as budget budgetID of userID
func (s *InMemoryBudgetStore) Add(ctx context.Context, userID, budgetID int64, doc *budget.Document) error {
	return s.Create(ctx, budgetKey(userID, budgetID), copyDocument(doc))
}

func (s *InMemoryBudgetStore) GetDocument(ctx context.Context, userID int64, budgetID int64) (*budget.Document, error) {
	doc, ok := s.Get(ctx, budgetKey(userID, budgetID))
	if !ok {
		return nil, ierr.NewErrorf("budget %d not found", budgetID).
			WithHintf("Budget %d not found", budgetID).
			Mark(ierr.ErrNotFound)
	}
	return copyDocument(doc), nil
}
