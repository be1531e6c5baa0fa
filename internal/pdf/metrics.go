package pdf

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

type Weight int

const (
	Regular Weight = iota
	Bold
)

// Font is a Helvetica face at a size in points
type Font struct {
	Weight Weight
	Size   float64
}

func (f Font) style() string {
	if f.Weight == Bold {
		return "B"
	}
	return ""
}

// Helvetica AFM vertical metrics per 1000 units of em. Line height is
// ascender - descender + line gap, where the gap comes from the font bbox.
const helveticaAscender = 0.718

var lineHeightFactor = map[Weight]float64{
	Regular: 1.156,
	Bold:    1.190,
}

// Metrics is the single source of truth for how much room text takes.
// Measure always equals len(Wrap(...)) * LineHeight, so whatever a block
// reserves is exactly what the writer draws.
type Metrics interface {
	Measure(text string, font Font, maxWidth float64) float64
	LineHeight(font Font) float64
	Wrap(text string, font Font, maxWidth float64) []string
}

// fontMetrics measures with the PDF core font tables. Core fonts are built
// into every PDF viewer, so widths never depend on what the host has installed.
// It keeps the current font in the underlying fpdf instance and is therefore
// not safe for concurrent use; every render builds its own.
type fontMetrics struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
}

// NewMetrics returns a fresh metrics provider for a single render
func NewMetrics() Metrics {
	p := fpdf.New("P", "pt", "Letter", "")
	return &fontMetrics{
		pdf:       p,
		translate: p.UnicodeTranslatorFromDescriptor(""),
	}
}

func (m *fontMetrics) LineHeight(font Font) float64 {
	return font.Size * lineHeightFactor[font.Weight]
}

func (m *fontMetrics) Measure(text string, font Font, maxWidth float64) float64 {
	return float64(len(m.Wrap(text, font, maxWidth))) * m.LineHeight(font)
}

func (m *fontMetrics) Wrap(text string, font Font, maxWidth float64) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, m.wrapParagraph(paragraph, font, maxWidth)...)
	}
	return lines
}

func (m *fontMetrics) width(text string, font Font) float64 {
	m.pdf.SetFont(fontFamily, font.style(), font.Size)
	return m.pdf.GetStringWidth(m.translate(text))
}

// wrapParagraph breaks greedily at blanks. A word wider than the line is cut
// between characters. An empty paragraph still takes one (blank) line.
func (m *fontMetrics) wrapParagraph(paragraph string, font Font, maxWidth float64) []string {
	words := strings.FieldsFunc(paragraph, func(r rune) bool {
		return r == ' ' || r == '\t'
	})

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.width(candidate, font) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
		}
		for m.width(word, font) > maxWidth {
			head, tail := m.splitWord(word, font, maxWidth)
			if tail == "" {
				break
			}
			lines = append(lines, head)
			word = tail
		}
		current = word
	}

	if current != "" || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

// splitWord returns the longest prefix of word that fits, but never less
// than one character so wrapping always makes progress.
func (m *fontMetrics) splitWord(word string, font Font, maxWidth float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && m.width(string(runes[:n+1]), font) <= maxWidth {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
