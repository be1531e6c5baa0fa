package pdf

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/go-pdf/fpdf"
)

const creator = "budgetpdf"

// writer replays a composition onto fpdf. Everything that could vary between
// runs (dates, dictionary order) is pinned, so the same composition always
// yields the same bytes.
type writer struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
}

func newWriter(size PaperSize) *writer {
	p := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	// ops carry absolute positions
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.SetCompression(true)
	p.SetCatalogSort(true)

	return &writer{pdf: p, translate: p.UnicodeTranslatorFromDescriptor("")}
}

// Write serializes a composition to PDF bytes
func Write(comp *Composition) ([]byte, error) {
	w := newWriter(comp.Size)
	p := w.pdf

	p.SetCreationDate(comp.CreatedAt)
	p.SetModificationDate(comp.CreatedAt)
	p.SetTitle(comp.Title, true)
	p.SetAuthor(comp.Author, true)
	p.SetCreator(creator, false)

	if comp.Logo != nil {
		p.RegisterImageOptionsReader(logoImageName, fpdf.ImageOptions{ImageType: comp.Logo.ImageType}, bytes.NewReader(comp.Logo.Data))
	}

	for _, page := range comp.Pages {
		p.AddPage()
		for _, op := range page.Ops {
			w.draw(op)
		}
	}

	if err := p.Error(); err != nil {
		return nil, errors.Wrap(err, "writing pdf")
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "writing pdf")
	}
	return buf.Bytes(), nil
}

func (w *writer) draw(op Op) {
	switch op := op.(type) {
	case TextOp:
		w.drawText(op)
	case RectOp:
		w.drawRect(op)
	case LineOp:
		w.pdf.SetDrawColor(op.Color.RGB())
		w.pdf.SetLineWidth(op.Width)
		w.pdf.Line(op.X1, op.Y1, op.X2, op.Y2)
	case ImageOp:
		w.pdf.ImageOptions(logoImageName, op.X, op.Y, op.Width, op.Height, false,
			fpdf.ImageOptions{ImageType: op.Logo.ImageType}, 0, "")
	}
}

func (w *writer) drawText(op TextOp) {
	w.pdf.SetFont(fontFamily, op.Font.style(), op.Font.Size)
	w.pdf.SetTextColor(op.Color.RGB())

	for i, line := range op.Lines {
		if line == "" {
			continue
		}
		s := w.translate(line)
		x := op.X
		switch op.Align {
		case AlignRight:
			x += op.Width - w.pdf.GetStringWidth(s)
		case AlignCenter:
			x += (op.Width - w.pdf.GetStringWidth(s)) / 2
		}
		baseline := op.Y + float64(i)*op.LineHeight + op.Font.Size*helveticaAscender
		w.pdf.Text(x, baseline, s)
	}
}

func (w *writer) drawRect(op RectOp) {
	style := ""
	if op.Fill != nil {
		w.pdf.SetFillColor(op.Fill.RGB())
		style += "F"
	}
	if op.Stroke != nil {
		w.pdf.SetDrawColor(op.Stroke.RGB())
		w.pdf.SetLineWidth(op.LineWidth)
		style += "D"
	}
	if style == "" {
		return
	}

	if op.Radius > 0 {
		w.pdf.RoundedRect(op.X, op.Y, op.Width, op.Height, op.Radius, "1234", style)
		return
	}
	w.pdf.Rect(op.X, op.Y, op.Width, op.Height, style)
}
