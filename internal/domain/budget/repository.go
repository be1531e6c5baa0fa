package budget

import (
	"context"
)

// Repository defines the read side the PDF pipeline needs
type Repository interface {
	// GetDocument loads a budget owned by userID, joined with its client, the
	// owner's branding and its items. Returns ierr.ErrNotFound when the budget
	// does not exist or belongs to someone else.
	GetDocument(ctx context.Context, userID int64, budgetID int64) (*Document, error)
}
