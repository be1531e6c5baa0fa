package types

import "strings"

const (
	DefaultUnit     = "un"
	UnitSquareMeter = "m²"
)

// NormalizeUnit returns the label printed after a quantity. Blank units fall
// back to "un"; "m2" and "m²" in any case become "m²"; everything else is
// upper-cased ("un" → "UN", "kg" → "KG").
func NormalizeUnit(unit string) string {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = DefaultUnit
	}
	switch strings.ToLower(unit) {
	case "m²", "m2":
		return UnitSquareMeter
	}
	return strings.ToUpper(unit)
}
