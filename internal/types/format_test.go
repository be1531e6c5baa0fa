package types

import (
	"encoding/base64"
	"testing"
	"time"

	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "abc", want: ""},
		{in: "11987654321", want: "(11) 98765-4321"},
		{in: "(11) 98765-4321", want: "(11) 98765-4321"},
		{in: "1134567890", want: "(11) 3456-7890"},
		{in: "+55 11 98765-4321", want: "(11) 98765-4321"},
		{in: "5511987654321", want: "(11) 98765-4321"},
		{in: "98765", want: "98765"},
		{in: "441234567890123", want: "441234567890123"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhone(tt.in))
		})
	}
}

func TestResolveAccentColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "#FF8800", want: "#ff8800"},
		{in: "  #10b981 ", want: "#10b981"},
		{in: "", want: DefaultAccentColor},
		{in: "not-a-color", want: DefaultAccentColor},
		{in: "#abc", want: DefaultAccentColor},
		{in: "ff8800", want: DefaultAccentColor},
		{in: "#ff8800aa", want: DefaultAccentColor},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAccentColor(tt.in).Hex())
		})
	}
}

func TestColorRGB(t *testing.T) {
	r, g, b := MustParseHexColor("#2563eb").RGB()
	assert.Equal(t, []int{0x25, 0x63, 0xeb}, []int{r, g, b})
	assert.Panics(t, func() { MustParseHexColor("blue") })
}

func TestNormalizeUnit(t *testing.T) {
	tests := map[string]string{
		"":    "UN",
		"  ":  "UN",
		"un":  "UN",
		"kg":  "KG",
		"m2":  "m²",
		"M2":  "m²",
		"m²":  "m²",
		" h ": "H",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeUnit(in), "unit %q", in)
	}
}

func TestAddDaysAndFormat(t *testing.T) {
	issued := time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "04/01/2025", FormatDateBR(AddDays(issued, 15)))
	assert.Equal(t, "20/12/2024", FormatDateBR(issued))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-03-05 10:11:12")
	require.NoError(t, err)
	assert.Equal(t, 5, d.Day())

	d, err = ParseDate("2024-03-05 10:11:12.345+00")
	require.NoError(t, err)
	assert.Equal(t, 10, d.UTC().Hour())

	_, err = ParseDate("05/03/2024")
	assert.True(t, ierr.IsValidation(err))
}

func TestDecodeImagePayload(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0xff, 0xfe}
	std := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "bare base64", payload: std},
		{name: "data url", payload: "data:image/png;base64," + std},
		{name: "whitespace", payload: "  " + std[:4] + "\n" + std[4:] + " "},
		{name: "url alphabet", payload: base64.RawURLEncoding.EncodeToString(raw)},
		{name: "empty", payload: "   ", wantErr: true},
		{name: "empty data url", payload: "data:image/png;base64,", wantErr: true},
		{name: "garbage", payload: "***", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeImagePayload(tt.payload)
			if tt.wantErr {
				assert.True(t, ierr.IsValidation(err))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, raw, got)
		})
	}
}
