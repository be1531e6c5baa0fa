package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{name: "brl simple", amount: "300", code: CurrencyBRL, want: "R$\u00a0300,00"},
		{name: "brl thousands", amount: "1234.5", code: CurrencyBRL, want: "R$\u00a01.234,50"},
		{name: "brl millions", amount: "1234567.891", code: CurrencyBRL, want: "R$\u00a01.234.567,89"},
		{name: "brl zero", amount: "0", code: CurrencyBRL, want: "R$\u00a00,00"},
		{name: "brl rounds half away from zero", amount: "0.005", code: CurrencyBRL, want: "R$\u00a00,01"},
		{name: "brl negative", amount: "-1500", code: CurrencyBRL, want: "-R$\u00a01.500,00"},
		{name: "brl negative rounding to zero", amount: "-0.001", code: CurrencyBRL, want: "R$\u00a00,00"},
		{name: "upper case code", amount: "10", code: "BRL", want: "R$\u00a010,00"},
		{name: "usd", amount: "1234.5", code: CurrencyUSD, want: "$1,234.50"},
		{name: "unknown code", amount: "12", code: "xyz", want: "XYZ\u00a012.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCurrency(decimal.RequireFromString(tt.amount), tt.code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$\u00a0150,00", FormatBRL(decimal.NewFromInt(150)))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "1", groupThousands("1", "."))
	assert.Equal(t, "999", groupThousands("999", "."))
	assert.Equal(t, "1.000", groupThousands("1000", "."))
	assert.Equal(t, "12.345.678", groupThousands("12345678", "."))
}
