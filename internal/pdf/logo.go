package pdf

import (
	"bytes"
	"math"

	"github.com/cockroachdb/errors"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/go-pdf/fpdf"
	"github.com/h2non/filetype"
)

const logoImageName = "logo"

// ErrLogoDecodeFailure marks logo payloads that cannot be embedded. The
// document is still rendered, just without the logo.
var ErrLogoDecodeFailure = errors.New("logo decode failure")

// fpdf image type names by detected file extension
var logoImageTypes = map[string]string{
	"png": "PNG",
	"jpg": "JPG",
	"gif": "GIF",
}

// Logo is a decoded image ready for embedding
type Logo struct {
	Data      []byte
	ImageType string
	Width     float64
	Height    float64
}

// Fit scales the logo to fit inside a box keeping its aspect ratio
func (l *Logo) Fit(boxWidth, boxHeight float64) (float64, float64) {
	scale := math.Min(boxWidth/l.Width, boxHeight/l.Height)
	return l.Width * scale, l.Height * scale
}

// DecodeLogo sniffs the image type and makes sure fpdf can parse the bytes.
// An empty payload means no logo and is not an error.
func DecodeLogo(data []byte) (logo *Logo, err error) {
	if len(data) == 0 {
		return nil, nil
	}

	// fpdf's image parsers panic on truncated streams
	defer func() {
		if r := recover(); r != nil {
			logo = nil
			err = ierr.NewErrorf("logo parser panicked: %v", r).
				WithHint("Logo could not be read").
				Mark(ErrLogoDecodeFailure)
		}
	}()

	kind, err := filetype.Match(data)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Logo could not be read").
			Mark(ErrLogoDecodeFailure)
	}

	imageType, ok := logoImageTypes[kind.Extension]
	if !ok {
		return nil, ierr.NewErrorf("unsupported logo type %q", kind.MIME.Value).
			WithHint("Logo must be a PNG, JPEG or GIF image").
			WithReportableDetails(map[string]interface{}{
				"mime": kind.MIME.Value,
			}).
			Mark(ErrLogoDecodeFailure)
	}

	scratch := fpdf.New("P", "pt", "Letter", "")
	info := scratch.RegisterImageOptionsReader(logoImageName, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if err := scratch.Error(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Logo could not be read").
			Mark(ErrLogoDecodeFailure)
	}
	if info == nil || info.Width() <= 0 || info.Height() <= 0 {
		return nil, ierr.NewError("logo has no dimensions").
			WithHint("Logo could not be read").
			Mark(ErrLogoDecodeFailure)
	}

	return &Logo{
		Data:      data,
		ImageType: imageType,
		Width:     info.Width(),
		Height:    info.Height(),
	}, nil
}
