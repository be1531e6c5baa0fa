package pdf

import (
	"strings"
	"time"

	"github.com/flexprice/budgetpdf/internal/types"
)

// Op is one draw instruction. Coordinates are points from the top-left
// corner of the page.
type Op interface {
	isOp()
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextOp draws pre-wrapped lines. Y is the top of the first line.
type TextOp struct {
	X          float64
	Y          float64
	Width      float64
	Lines      []string
	Font       Font
	LineHeight float64
	Color      types.Color
	Align      Align
}

// Text joins the lines back with newlines
func (t TextOp) Text() string {
	return strings.Join(t.Lines, "\n")
}

// Height is the vertical extent the lines occupy
func (t TextOp) Height() float64 {
	return float64(len(t.Lines)) * t.LineHeight
}

// RectOp fills and/or strokes a rectangle. Radius > 0 rounds all corners.
type RectOp struct {
	X         float64
	Y         float64
	Width     float64
	Height    float64
	Radius    float64
	Fill      *types.Color
	Stroke    *types.Color
	LineWidth float64
}

type LineOp struct {
	X1    float64
	Y1    float64
	X2    float64
	Y2    float64
	Color types.Color
	Width float64
}

// ImageOp places the document logo scaled to Width x Height
type ImageOp struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Logo   *Logo
}

func (TextOp) isOp()  {}
func (RectOp) isOp()  {}
func (LineOp) isOp()  {}
func (ImageOp) isOp() {}

type Page struct {
	Ops []Op
}

// Composition is the finished layout: every page with its draw instructions
// in emission order, plus the metadata written into the file.
type Composition struct {
	Size      PaperSize
	Pages     []*Page
	Logo      *Logo
	Title     string
	Author    string
	CreatedAt time.Time
}

// TextOps returns the text instructions of page i, in order
func (c *Composition) TextOps(i int) []TextOp {
	var out []TextOp
	for _, op := range c.Pages[i].Ops {
		if t, ok := op.(TextOp); ok {
			out = append(out, t)
		}
	}
	return out
}
