package pdf

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/flexprice/budgetpdf/internal/domain/budget"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/flexprice/budgetpdf/internal/types"
)

type stage int

const (
	stageTitle stage = iota
	stageInfoCards
	stageTableHeader
	stageRows
	stageTotal
	stageNoteBox
	stageFooter
	stageDone
)

// Composer lays a budget out into pages. It runs the blocks in a fixed order
// (title, info cards, table header, rows, total, note box, footer) and is the
// only place that breaks pages.
type Composer struct {
	metrics Metrics
	size    PaperSize
	margins Margins
}

func NewComposer(metrics Metrics, size PaperSize) *Composer {
	return &Composer{
		metrics: metrics,
		size:    size,
		margins: UniformMargins(pageMargin),
	}
}

// Compose returns the finished layout. Any panic raised while measuring or
// building a block aborts the whole composition; no partial result escapes.
func (c *Composer) Compose(doc *budget.Document, logo *Logo) (comp *Composition, err error) {
	defer recoverRenderFailure(&err)

	cur := NewCursor(c.size, c.margins)
	r := &composition{
		m:      c.metrics,
		lay:    newLayout(cur),
		cur:    cur,
		doc:    doc,
		logo:   logo,
		accent: doc.Accent(),
		out: &Composition{
			Size:      c.size,
			Pages:     []*Page{{}},
			Logo:      logo,
			Title:     fmt.Sprintf("Orçamento %04d", doc.Number),
			Author:    doc.Provider.Name,
			CreatedAt: doc.IssueDate,
		},
	}

	for r.stage != stageDone {
		r.step()
	}
	return r.out, nil
}

// composition is the state of one Compose call
type composition struct {
	m      Metrics
	lay    layout
	cur    Cursor
	doc    *budget.Document
	logo   *Logo
	accent types.Color
	out    *Composition

	stage   stage
	inTable bool
	row     int
}

func (r *composition) step() {
	switch r.stage {
	case stageTitle:
		r.emit(buildTitle(r.cur, r.m, r.lay, titleData{
			issued:     types.FormatDateBR(r.doc.IssueDate),
			validUntil: types.FormatDateBR(r.doc.ValidUntil()),
			logo:       r.logo,
			accent:     r.accent,
		}))
		r.stage = stageInfoCards

	case stageInfoCards:
		r.emit(buildInfoCards(r.cur, r.m, r.lay,
			cardLines(providerRole, r.doc.Provider, r.accent),
			cardLines(clientRole, r.doc.Client, r.accent),
		))
		r.emit(buildItemsCaption(r.cur, r.m, r.lay, r.accent))
		r.stage = stageTableHeader

	case stageTableHeader:
		r.emit(buildTableHeader(r.cur, r.m, r.lay, r.accent))
		r.inTable = true
		r.stage = stageRows

	case stageRows:
		if r.row >= len(r.doc.Items) {
			r.stage = stageTotal
			return
		}
		data := newRowData(r.doc.Items[r.row])
		// a row taller than a whole page is still placed whole on the new page
		if r.cur.WouldOverflow(rowHeight(r.m, r.lay, data), rowFooterReserve) {
			r.newPage()
		}
		r.emit(buildTableRow(r.cur, r.m, r.lay, data))
		r.row++

	case stageTotal:
		r.inTable = false
		r.emit(buildTotal(r.cur, r.m, r.lay, types.FormatBRL(r.doc.Total), r.accent))
		r.stage = stageNoteBox

	case stageNoteBox:
		if r.doc.HasNotes() {
			note := measureNote(r.m, r.lay, r.doc.Notes)
			if r.cur.WouldOverflow(note.height, noteFooterReserve) {
				r.newPage()
			}
			r.emit(buildNoteBox(r.cur, r.m, r.lay, note, r.accent))
		}
		r.stage = stageFooter

	case stageFooter:
		text := footerText(types.FormatPhone(r.doc.Provider.Phone))
		h := r.m.Measure(text, footerFont, r.lay.contentWidth)
		if r.cur.Y+footerGap > footerTop(r.cur, h) {
			r.newPage()
		}
		r.emit(buildFooter(r.cur, r.m, r.lay, text))
		r.stage = stageDone
	}
}

// emit appends ops to the current page and moves the cursor to y
func (r *composition) emit(y float64, ops []Op) {
	page := r.out.Pages[r.cur.PageIndex]
	page.Ops = append(page.Ops, ops...)
	r.cur.Y = y
}

func (r *composition) newPage() {
	r.cur.NewPage()
	r.out.Pages = append(r.out.Pages, &Page{})
	if r.inTable {
		r.emit(buildTableHeader(r.cur, r.m, r.lay, r.accent))
	}
}

func recoverRenderFailure(err *error) {
	rec := recover()
	if rec == nil {
		return
	}
	cause, ok := rec.(error)
	if !ok {
		cause = errors.Newf("%v", rec)
	}
	*err = ierr.WithError(cause).
		WithHint("Failed to render budget PDF").
		Mark(ierr.ErrRenderFailed)
}
