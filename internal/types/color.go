package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultAccentColor is used whenever a user has no valid brand color
const DefaultAccentColor = "#2563eb"

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Color is an sRGB color with 8 bits per channel
type Color struct {
	R, G, B uint8
}

// Hex returns the lower-case #rrggbb form of c
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGB returns the channels as ints, the form PDF writers take
func (c Color) RGB() (int, int, int) {
	return int(c.R), int(c.G), int(c.B)
}

// ParseHexColor parses a #rrggbb string. Surrounding blanks are ignored and
// letters may be in either case; short (#rgb) and alpha forms are rejected.
func ParseHexColor(value string) (Color, bool) {
	value = strings.TrimSpace(value)
	if !hexColorPattern.MatchString(value) {
		return Color{}, false
	}
	n, err := strconv.ParseUint(value[1:], 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, true
}

// MustParseHexColor is for package-level palettes
func MustParseHexColor(value string) Color {
	c, ok := ParseHexColor(value)
	if !ok {
		panic(fmt.Sprintf("invalid color literal %q", value))
	}
	return c
}

// ResolveAccentColor returns the brand color, or DefaultAccentColor when the
// value is empty or malformed.
func ResolveAccentColor(value string) Color {
	if c, ok := ParseHexColor(value); ok {
		return c
	}
	return MustParseHexColor(DefaultAccentColor)
}
