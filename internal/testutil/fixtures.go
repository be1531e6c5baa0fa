package testutil

import (
	"fmt"
	"time"

	"github.com/flexprice/budgetpdf/internal/domain/budget"
	"github.com/shopspring/decimal"
)

// SampleBudget returns a budget with n items priced at 10.00 each
func SampleBudget(number, n int) *budget.Document {
	doc := &budget.Document{
		Number:       number,
		IssueDate:    time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		ValidityDays: 20,
		Total:        decimal.NewFromInt(int64(10 * n)),
		Provider: budget.Party{
			Name:        "Maria Reformas",
			Phone:       "11987654321",
			ServiceType: "Pintura",
		},
		Client: budget.Party{Name: "João Silva"},
	}
	for i := 1; i <= n; i++ {
		doc.Items = append(doc.Items, budget.LineItem{
			Description: fmt.Sprintf("Item %02d", i),
			Quantity:    decimal.NewFromInt(1),
			Unit:        "un",
			UnitPrice:   decimal.NewFromInt(10),
		})
	}
	return doc
}
