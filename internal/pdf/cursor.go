package pdf

type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargins sets all four margins to m
func UniformMargins(m float64) Margins {
	return Margins{Top: m, Right: m, Bottom: m, Left: m}
}

// Cursor tracks the vertical write position. It is a plain value: block
// builders receive a copy and report where the next block starts, and only
// the composer moves the real one.
type Cursor struct {
	PageWidth  float64
	PageHeight float64
	Margins    Margins
	Y          float64
	PageIndex  int
}

// NewCursor starts at the top margin of the first page
func NewCursor(size PaperSize, margins Margins) Cursor {
	return Cursor{
		PageWidth:  size.Width,
		PageHeight: size.Height,
		Margins:    margins,
		Y:          margins.Top,
	}
}

func (c Cursor) ContentWidth() float64 {
	return c.PageWidth - c.Margins.Left - c.Margins.Right
}

// Bottom is the lowest y content may reach on a page
func (c Cursor) Bottom() float64 {
	return c.PageHeight - c.Margins.Bottom
}

// WouldOverflow reports whether a block of height h placed at Y would cross
// the bottom margin once reserve points are kept free above it.
func (c Cursor) WouldOverflow(h, reserve float64) bool {
	return c.Y+h > c.Bottom()-reserve
}

func (c *Cursor) Advance(h float64) {
	c.Y += h
}

// NewPage moves to the top of the next page. Re-emitting a table header is
// up to the composer.
func (c *Cursor) NewPage() {
	c.PageIndex++
	c.Y = c.Margins.Top
}
