package types

import (
	"strings"
	"time"

	ierr "github.com/flexprice/budgetpdf/internal/errors"
)

const (
	// DateLayoutBR is the pt-BR short date, e.g. 05/03/2024
	DateLayoutBR = "02/01/2006"
	// DateLayoutISO is the calendar date accepted on input
	DateLayoutISO = "2006-01-02"
	// dateLayoutPostgres is timestamptz cast to text
	dateLayoutPostgres = "2006-01-02 15:04:05-07"
)

// FormatDateBR formats t as dd/mm/yyyy in t's own location.
func FormatDateBR(t time.Time) string {
	return t.Format(DateLayoutBR)
}

// AddDays moves t forward by days calendar days, crossing month and year
// boundaries the way a wall calendar does.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// ParseDate accepts a bare calendar date, an RFC 3339 timestamp or the
// "YYYY-MM-DD HH:MM:SS[+TZ]" forms SQL defaults produce.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{DateLayoutISO, time.RFC3339, time.DateTime, dateLayoutPostgres} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ierr.NewErrorf("invalid date: %q", value).
		WithHint("Dates must be formatted as YYYY-MM-DD").
		Mark(ierr.ErrValidation)
}
