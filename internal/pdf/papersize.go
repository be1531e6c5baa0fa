package pdf

import "strings"

type PaperSize struct {
	Name   string
	Width  float64 // in `pt` (1" = 72pts)
	Height float64 // in `pt`
}

var (
	LetterSize = PaperSize{Name: "Letter", Width: 612, Height: 792}         // 8.5" x 11"
	A4Size     = PaperSize{Name: "A4", Width: 595.27559, Height: 841.88976} // 210mm x 297mm
)

// PaperSizeByName looks a paper size up case-insensitively
func PaperSizeByName(name string) (PaperSize, bool) {
	for _, size := range []PaperSize{LetterSize, A4Size} {
		if strings.EqualFold(size.Name, name) {
			return size, true
		}
	}
	return PaperSize{}, false
}
