package pdf

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/flexprice/budgetpdf/internal/domain/budget"
	"github.com/flexprice/budgetpdf/internal/types"
)

// Block builders are pure: they take a copy of the cursor and return the y
// where the next block starts together with the ops to emit on the current
// page. None of them decides on page breaks.

var (
	titleFont       = Font{Weight: Bold, Size: 20}
	metaFont        = Font{Weight: Regular, Size: 9}
	captionFont     = Font{Weight: Bold, Size: 9}
	nameFont        = Font{Weight: Bold, Size: 12}
	serviceFont     = Font{Weight: Regular, Size: 10}
	contactFont     = Font{Weight: Regular, Size: 9}
	sectionFont     = Font{Weight: Bold, Size: 10}
	headerFont      = Font{Weight: Bold, Size: 9}
	rowFont         = Font{Weight: Regular, Size: 9}
	totalLabelFont  = Font{Weight: Bold, Size: 11}
	totalAmountFont = Font{Weight: Bold, Size: 12}
	noteTitleFont   = Font{Weight: Bold, Size: 9}
	noteBodyFont    = Font{Weight: Regular, Size: 10}
	footerFont      = Font{Weight: Regular, Size: 9}
)

// textOp wraps s to width and returns the op with its height
func textOp(m Metrics, x, y, width float64, s string, font Font, color types.Color, align Align) (TextOp, float64) {
	op := TextOp{
		X:          x,
		Y:          y,
		Width:      width,
		Lines:      m.Wrap(s, font, width),
		Font:       font,
		LineHeight: m.LineHeight(font),
		Color:      color,
		Align:      align,
	}
	return op, op.Height()
}

func colorPtr(c types.Color) *types.Color {
	return &c
}

type titleData struct {
	issued     string
	validUntil string
	logo       *Logo
	accent     types.Color
}

func buildTitle(cur Cursor, m Metrics, lay layout, d titleData) (float64, []Op) {
	var ops []Op
	top := cur.Y

	if d.logo != nil {
		w, h := d.logo.Fit(logoBoxWidth, logoBoxHeight)
		ops = append(ops, ImageOp{
			X:      cur.PageWidth - cur.Margins.Right - logoBoxWidth,
			Y:      top,
			Width:  w,
			Height: h,
			Logo:   d.logo,
		})
	}

	title, _ := textOp(m, lay.left, top, lay.contentWidth, "ORÇAMENTO", titleFont, colorText, AlignLeft)
	ops = append(ops, title)

	metaLH := m.LineHeight(metaFont)
	metaY := top + m.LineHeight(titleFont) + 4
	issued, _ := textOp(m, lay.left, metaY, lay.contentWidth, "Data: "+d.issued, metaFont, colorMuted, AlignLeft)
	valid, _ := textOp(m, lay.left, metaY+metaLH+2, lay.contentWidth, "Válido até: "+d.validUntil, metaFont, colorMuted, AlignLeft)
	ops = append(ops, issued, valid)

	ruleY := metaY + metaLH*2 + 10
	ops = append(ops, LineOp{X1: lay.left, Y1: ruleY, X2: lay.right, Y2: ruleY, Color: d.accent, Width: 1})

	return ruleY + 12, ops
}

type cardLine struct {
	text    string
	font    Font
	color   types.Color
	spacing float64
}

type partyRole int

const (
	providerRole partyRole = iota
	clientRole
)

// cardLines lists what a party card shows. Caption and name are always
// there; service, phone and email only when present.
func cardLines(role partyRole, p budget.Party, accent types.Color) []cardLine {
	caption, phoneLabel := "Prestador", "WhatsApp:"
	if role == clientRole {
		caption, phoneLabel = "Cliente", "Telefone:"
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "-"
	}

	lines := []cardLine{
		{text: caption, font: captionFont, color: accent, spacing: 6},
		{text: name, font: nameFont, color: colorText, spacing: 2},
	}
	if role == providerRole {
		if service := strings.TrimSpace(p.ServiceType); service != "" {
			lines = append(lines, cardLine{text: service, font: serviceFont, color: colorText, spacing: 4})
		}
	}
	if phone := types.FormatPhone(p.Phone); phone != "" {
		lines = append(lines, cardLine{text: phoneLabel + " " + phone, font: contactFont, color: accent, spacing: 4})
	}
	if email := strings.TrimSpace(p.Email); email != "" {
		lines = append(lines, cardLine{text: "Email: " + email, font: contactFont, color: accent, spacing: 4})
	}

	lines[len(lines)-1].spacing = 0
	return lines
}

func cardHeight(m Metrics, lines []cardLine, textWidth float64) float64 {
	h := 2.0 * cardPadding
	for _, l := range lines {
		h += m.Measure(l.text, l.font, textWidth) + l.spacing
	}
	return h
}

func drawCard(m Metrics, x, y, width, height float64, lines []cardLine) []Op {
	ops := []Op{RectOp{
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		Radius:    cardRadius,
		Fill:      colorPtr(colorCardFill),
		Stroke:    colorPtr(colorBorder),
		LineWidth: 1,
	}}

	textWidth := width - 2*cardPadding
	textY := y + cardPadding
	for _, l := range lines {
		op, h := textOp(m, x+cardPadding, textY, textWidth, l.text, l.font, l.color, AlignLeft)
		ops = append(ops, op)
		textY += h + l.spacing
	}
	return ops
}

// buildInfoCards draws provider and client side by side; both take the
// height of the taller one.
func buildInfoCards(cur Cursor, m Metrics, lay layout, provider, client []cardLine) (float64, []Op) {
	textWidth := lay.cardWidth - 2*cardPadding
	height := math.Max(cardHeight(m, provider, textWidth), cardHeight(m, client, textWidth))

	ops := drawCard(m, lay.left, cur.Y, lay.cardWidth, height, provider)
	ops = append(ops, drawCard(m, lay.left+lay.cardWidth+cardGap, cur.Y, lay.cardWidth, height, client)...)

	cur.Advance(height + cardGap)
	return cur.Y, ops
}

func buildItemsCaption(cur Cursor, m Metrics, lay layout, accent types.Color) (float64, []Op) {
	op, h := textOp(m, lay.left, cur.Y, lay.contentWidth, "Itens", sectionFont, accent, AlignLeft)
	cur.Advance(h + 8)
	return cur.Y, []Op{op}
}

func buildTableHeader(cur Cursor, m Metrics, lay layout, accent types.Color) (float64, []Op) {
	y := cur.Y
	ops := []Op{RectOp{
		X:      lay.left,
		Y:      y,
		Width:  lay.contentWidth,
		Height: tableHeaderH,
		Fill:   colorPtr(colorHeaderFill),
	}}

	textY := y + 4
	desc, _ := textOp(m, lay.descX+cellInset, textY, lay.descTextWidth(), "Descrição", headerFont, accent, AlignLeft)
	qty, _ := textOp(m, lay.qtyX, textY, lay.qtyWidth, "Qtd", headerFont, accent, AlignCenter)
	unit, _ := textOp(m, lay.unitX, textY, lay.unitWidth, "Valor unitário", headerFont, accent, AlignRight)
	total, _ := textOp(m, lay.totalX, textY, lay.totalWidth, "Total do item", headerFont, accent, AlignRight)
	ops = append(ops, desc, qty, unit, total)

	cur.Advance(tableHeaderH + 6)
	return cur.Y, ops
}

// rowData is one item already formatted for display
type rowData struct {
	description string
	quantity    string
	unitPrice   string
	lineTotal   string
}

func newRowData(item budget.LineItem) rowData {
	description := item.Description
	if strings.TrimSpace(description) == "" {
		description = "-"
	}
	return rowData{
		description: description,
		quantity:    item.QuantityLabel(),
		unitPrice:   types.FormatBRL(item.UnitPrice),
		lineTotal:   types.FormatBRL(item.LineTotal()),
	}
}

// rowHeight is driven by the description, the only cell expected to wrap
func rowHeight(m Metrics, lay layout, r rowData) float64 {
	return math.Max(m.Measure(r.description, rowFont, lay.descTextWidth()), m.LineHeight(rowFont))
}

func buildTableRow(cur Cursor, m Metrics, lay layout, r rowData) (float64, []Op) {
	y := cur.Y
	desc, _ := textOp(m, lay.descX+cellInset, y, lay.descTextWidth(), r.description, rowFont, colorText, AlignLeft)
	qty, _ := textOp(m, lay.qtyX, y, lay.qtyWidth, r.quantity, rowFont, colorText, AlignCenter)
	unit, _ := textOp(m, lay.unitX, y, lay.unitWidth, r.unitPrice, rowFont, colorText, AlignRight)
	total, _ := textOp(m, lay.totalX, y, lay.totalWidth, r.lineTotal, rowFont, colorText, AlignRight)

	cur.Advance(rowHeight(m, lay, r) + rowGap)
	return cur.Y, []Op{desc, qty, unit, total}
}

func buildTotal(cur Cursor, m Metrics, lay layout, amount string, accent types.Color) (float64, []Op) {
	y := cur.Y
	ops := []Op{LineOp{X1: lay.left, Y1: y, X2: lay.right, Y2: y, Color: colorBorder, Width: 1}}

	y += 10
	label, _ := textOp(m, lay.unitX, y, lay.unitWidth, "TOTAL:", totalLabelFont, colorText, AlignRight)
	value, _ := textOp(m, lay.totalX, y, lay.totalWidth, amount, totalAmountFont, accent, AlignRight)
	ops = append(ops, label, value)

	return y + 16, ops
}

// noteBox is a measured note, ready to be placed
type noteBox struct {
	title  string
	body   string
	height float64
}

// noteTitle is singular for one short line and plural otherwise
func noteTitle(body string) string {
	if !strings.Contains(body, "\n") && utf8.RuneCountInString(body) <= noteSingularLimit {
		return "Observação"
	}
	return "Observações"
}

func measureNote(m Metrics, lay layout, notes string) noteBox {
	body := strings.TrimSpace(notes)
	title := noteTitle(body)
	textWidth := lay.contentWidth - 2*notePadding

	return noteBox{
		title: title,
		body:  body,
		height: 2*notePadding +
			m.Measure(title, noteTitleFont, textWidth) +
			m.Measure(body, noteBodyFont, textWidth) +
			noteGap,
	}
}

func buildNoteBox(cur Cursor, m Metrics, lay layout, note noteBox, accent types.Color) (float64, []Op) {
	y := cur.Y
	ops := []Op{RectOp{
		X:         lay.left,
		Y:         y,
		Width:     lay.contentWidth,
		Height:    note.height,
		Radius:    noteRadius,
		Fill:      colorPtr(colorNoteFill),
		Stroke:    colorPtr(accent),
		LineWidth: 1,
	}}

	x := lay.left + notePadding
	textWidth := lay.contentWidth - 2*notePadding
	title, titleH := textOp(m, x, y+notePadding, textWidth, note.title, noteTitleFont, accent, AlignLeft)
	body, _ := textOp(m, x, y+notePadding+titleH+noteGap, textWidth, note.body, noteBodyFont, colorText, AlignLeft)
	ops = append(ops, title, body)

	cur.Advance(note.height + 12)
	return cur.Y, ops
}

// footerText is the approval call to action
func footerText(phone string) string {
	if phone == "" {
		return "Para aprovar este orçamento, entre em contato pelo WhatsApp."
	}
	return "Para aprovar este orçamento, entre em contato pelo WhatsApp:\n" + phone
}

// footerTop is where a footer of height h starts: flush with the bottom margin
func footerTop(cur Cursor, h float64) float64 {
	return cur.Bottom() - h
}

func buildFooter(cur Cursor, m Metrics, lay layout, text string) (float64, []Op) {
	h := m.Measure(text, footerFont, lay.contentWidth)
	y := footerTop(cur, h)
	op, _ := textOp(m, lay.left, y, lay.contentWidth, text, footerFont, colorMuted, AlignCenter)
	return y + h, []Op{op}
}
