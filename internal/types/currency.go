package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	CurrencyBRL = "brl"
	CurrencyUSD = "usd"
	CurrencyEUR = "eur"
)

// CURRENCY_CODES_SYMBOLS is a map of 3 digit ISO currency codes to their symbols
var CURRENCY_CODES_SYMBOLS = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"brl": "R$",
	"ars": "$",
	"clp": "$",
	"mxn": "MX$",
}

// GetCurrencySymbol returns the symbol for a given currency code
// if the code is not found, it returns the code itself
func GetCurrencySymbol(code string) string {
	if symbol, ok := CURRENCY_CODES_SYMBOLS[strings.ToLower(code)]; ok {
		return symbol
	}
	return strings.ToUpper(code)
}

// currencyFormat describes how a currency is written in its home locale.
type currencyFormat struct {
	group     string
	decimal   string
	separator string // between symbol and digits
}

const nbsp = "\u00a0"

// Separators follow the CLDR patterns. pt-BR writes "R$ 1.234,56" with a
// no-break space after the symbol.
var currencyFormats = map[string]currencyFormat{
	CurrencyBRL: {group: ".", decimal: ",", separator: nbsp},
	CurrencyEUR: {group: ".", decimal: ",", separator: nbsp},
	CurrencyUSD: {group: ",", decimal: ".", separator: ""},
}

var defaultCurrencyFormat = currencyFormat{group: ",", decimal: ".", separator: nbsp}

// FormatCurrency renders amount with two fixed decimal places, locale grouping
// and the currency symbol in front. Rounding is half away from zero.
func FormatCurrency(amount decimal.Decimal, code string) string {
	code = strings.ToLower(code)
	f, ok := currencyFormats[code]
	if !ok {
		f = defaultCurrencyFormat
	}

	rounded := amount.Round(2)
	intPart, fracPart, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(GetCurrencySymbol(code))
	b.WriteString(f.separator)
	b.WriteString(groupThousands(intPart, f.group))
	b.WriteString(f.decimal)
	b.WriteString(fracPart)
	return b.String()
}

// FormatBRL formats amount as Brazilian reais, e.g. "R$ 1.234,56".
func FormatBRL(amount decimal.Decimal) string {
	return FormatCurrency(amount, CurrencyBRL)
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
