package dto

import (
	"fmt"
	"strings"

	"github.com/flexprice/budgetpdf/internal/domain/budget"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/flexprice/budgetpdf/internal/types"
	"github.com/flexprice/budgetpdf/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// RenderBudgetRequest is a complete budget sent inline, used by the preview
// endpoint and the batch CLI.
type RenderBudgetRequest struct {
	Number       int               `json:"number" validate:"min=0"`
	IssueDate    string            `json:"issue_date" validate:"required"`
	// ValidityDays accepts numbers and strings such as "20 dias"
	ValidityDays budget.Days       `json:"validity_days"`
	// Total defaults to the sum of the items when omitted
	Total        *decimal.Decimal  `json:"total,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Logo         string            `json:"logo,omitempty"`
	AccentColor  string            `json:"accent_color,omitempty"`
	Provider     PartyRequest      `json:"provider"`
	Client       PartyRequest      `json:"client"`
	Items        []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PartyRequest struct {
	Name        string `json:"name" validate:"omitempty,max=255"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	ServiceType string `json:"service_type,omitempty" validate:"omitempty,max=255"`
}

type LineItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty" validate:"omitempty,max=16"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (r *RenderBudgetRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	details := make(map[string]any)
	for i, item := range r.Items {
		if !item.Quantity.IsPositive() {
			details[fmt.Sprintf("items[%d].quantity", i)] = "must be greater than zero"
		}
		if item.UnitPrice.IsNegative() {
			details[fmt.Sprintf("items[%d].unit_price", i)] = "must not be negative"
		}
	}
	if r.Total != nil && r.Total.IsNegative() {
		details["total"] = "must not be negative"
	}
	if len(details) > 0 {
		return ierr.NewError("invalid budget amounts").
			WithHint("Quantities must be positive and prices must not be negative").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}

	if _, err := types.ParseDate(r.IssueDate); err != nil {
		return err
	}
	return nil
}

// ToDocument converts a validated request into the renderer's input. A logo
// that is not valid base64 is dropped and the budget renders without it.
func (r *RenderBudgetRequest) ToDocument(log *logger.Logger) (*budget.Document, error) {
	issued, err := types.ParseDate(r.IssueDate)
	if err != nil {
		return nil, err
	}

	var logo []byte
	if strings.TrimSpace(r.Logo) != "" {
		logo, err = types.DecodeImagePayload(r.Logo)
		if err != nil {
			log.Warnw("budget logo is not valid base64, ignoring it",
				"budget_number", r.Number,
				"error", err,
			)
			logo = nil
		}
	}

	items := lo.Map(r.Items, func(item LineItemRequest, _ int) budget.LineItem {
		return budget.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
		}
	})

	total := lo.Reduce(items, func(sum decimal.Decimal, item budget.LineItem, _ int) decimal.Decimal {
		return sum.Add(item.LineTotal())
	}, decimal.Zero)
	if r.Total != nil {
		total = *r.Total
	}

	return &budget.Document{
		Number:       r.Number,
		IssueDate:    issued,
		ValidityDays: r.ValidityDays,
		Total:        total,
		Notes:        r.Notes,
		Logo:         logo,
		AccentColor:  r.AccentColor,
		Provider:     r.Provider.toParty(),
		Client:       r.Client.toParty(),
		Items:        items,
	}, nil
}

func (p PartyRequest) toParty() budget.Party {
	return budget.Party{
		Name:        p.Name,
		Phone:       p.Phone,
		Email:       p.Email,
		ServiceType: p.ServiceType,
	}
}

// BudgetPDFUrlResponse is returned when the caller asks for a link instead of
// the document itself
type BudgetPDFUrlResponse struct {
	PresignedURL string `json:"presigned_url"`
}
