package budget

import (
	"strconv"
	"strings"
	"time"

	"github.com/flexprice/budgetpdf/internal/types"
	"github.com/shopspring/decimal"
)

// DefaultValidityDays applies when a budget carries no usable validity
const DefaultValidityDays = 15

// Document is everything the renderer needs for one budget, already joined
// from the budget, its client and the provider's branding. It is built fresh
// for every render and never mutated afterwards.
type Document struct {
	Number       int
	IssueDate    time.Time
	ValidityDays Days
	// Total is printed as given; it is not recomputed from Items.
	Total       decimal.Decimal
	Notes       string
	Logo        []byte
	AccentColor string
	Provider    Party
	Client      Party
	// Items are in presentation order and must not be empty.
	Items []LineItem
}

// ValidUntil is the issue date plus the effective validity period
func (d *Document) ValidUntil() time.Time {
	return types.AddDays(d.IssueDate, d.ValidityDays.OrDefault())
}

// Accent returns the brand color, falling back to the default accent
func (d *Document) Accent() types.Color {
	return types.ResolveAccentColor(d.AccentColor)
}

// HasNotes reports whether the note box should be drawn
func (d *Document) HasNotes() bool {
	return strings.TrimSpace(d.Notes) != ""
}

// Party is either side of the budget: the provider issuing it or the client
// receiving it. ServiceType is only meaningful for the provider.
type Party struct {
	Name        string
	Phone       string
	Email       string
	ServiceType string
}

type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
}

func (i LineItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// UnitLabel is the normalized unit, e.g. "UN" or "m²"
func (i LineItem) UnitLabel() string {
	return types.NormalizeUnit(i.Unit)
}

// QuantityLabel renders "<quantity> <unit>" with the shortest exact quantity
func (i LineItem) QuantityLabel() string {
	return i.Quantity.String() + " " + i.UnitLabel()
}

// Days is a validity period in days. Values that are missing, not numeric or
// not positive fall back to DefaultValidityDays.
type Days int

// ParseDays reads the leading integer of value ("20", "20 dias", "7.5")
// and returns 0 when there is none.
func ParseDays(value string) Days {
	value = strings.TrimSpace(value)
	end := 0
	for end < len(value) {
		c := value[end]
		if (c >= '0' && c <= '9') || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	n, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0
	}
	return Days(n)
}

// OrDefault returns the number of days to add to the issue date
func (d Days) OrDefault() int {
	if d <= 0 {
		return DefaultValidityDays
	}
	return int(d)
}

// UnmarshalJSON accepts numbers and strings. Garbage decodes to zero rather
// than failing the whole request.
func (d *Days) UnmarshalJSON(data []byte) error {
	*d = ParseDays(strings.Trim(string(data), `"`))
	return nil
}
