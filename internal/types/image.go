package types

import (
	"encoding/base64"
	"strings"
	"unicode"

	ierr "github.com/flexprice/budgetpdf/internal/errors"
)

const dataURLMarker = "base64,"

// DecodeImagePayload turns a stored logo (a data URL such as
// "data:image/png;base64,iVBOR..." or a bare base64 string) into raw bytes.
// Whitespace, missing padding and the URL-safe alphabet are tolerated. The
// bytes are not checked to be an image.
func DecodeImagePayload(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if idx := strings.Index(payload, dataURLMarker); idx >= 0 {
		payload = payload[idx+len(dataURLMarker):]
	}

	payload = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, payload)
	payload = strings.TrimRight(payload, "=")
	if payload == "" {
		return nil, ierr.NewError("empty image payload").
			WithHint("Logo is empty").
			Mark(ierr.ErrValidation)
	}

	data, err := base64.RawStdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(payload)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Logo is not valid base64").
			Mark(ierr.ErrValidation)
	}
	return data, nil
}
