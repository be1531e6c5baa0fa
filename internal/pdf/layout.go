package pdf

import (
	"math"

	"github.com/flexprice/budgetpdf/internal/types"
)

const (
	pageMargin = 40

	logoBoxWidth  = 90
	logoBoxHeight = 40

	cardGap     = 16
	cardPadding = 12
	cardRadius  = 6

	descriptionShare = 0.48
	quantityWidth    = 80
	unitPriceWidth   = 90
	cellInset        = 6
	tableHeaderH     = 18
	rowGap           = 8

	// free space kept above the bottom margin for the closing blocks
	rowFooterReserve  = 80
	noteFooterReserve = 60
	footerGap         = 24

	notePadding       = 10
	noteGap           = 6
	noteRadius        = 6
	noteSingularLimit = 80
)

var (
	colorText       = types.MustParseHexColor("#111827")
	colorMuted      = types.MustParseHexColor("#6b7280")
	colorCardFill   = types.MustParseHexColor("#f8fafc")
	colorBorder     = types.MustParseHexColor("#e5e7eb")
	colorHeaderFill = types.MustParseHexColor("#f3f4f6")
	colorNoteFill   = types.MustParseHexColor("#eef2ff")
)

// layout holds the horizontal geometry. It is derived once per render from
// the content width; the input is immutable for the whole render, so every
// repeated header and every row shares the same columns.
type layout struct {
	left         float64
	right        float64
	contentWidth float64

	cardWidth float64

	descX, descWidth   float64
	qtyX, qtyWidth     float64
	unitX, unitWidth   float64
	totalX, totalWidth float64
}

func newLayout(cur Cursor) layout {
	content := cur.ContentWidth()
	left := cur.Margins.Left

	l := layout{
		left:         left,
		right:        left + content,
		contentWidth: content,
		cardWidth:    (content - cardGap) / 2,
		descWidth:    math.Round(content * descriptionShare),
		qtyWidth:     quantityWidth,
		unitWidth:    unitPriceWidth,
	}
	l.totalWidth = content - l.descWidth - l.qtyWidth - l.unitWidth
	l.descX = left
	l.qtyX = l.descX + l.descWidth
	l.unitX = l.qtyX + l.qtyWidth
	l.totalX = l.unitX + l.unitWidth
	return l
}

// descTextWidth is the wrap width of a description cell
func (l layout) descTextWidth() float64 {
	return l.descWidth - 8
}
