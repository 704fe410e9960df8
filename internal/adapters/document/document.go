// Package document turns uploaded statement files into page texts.
// It is the only place that knows about file formats; everything downstream
// works on []string pages
package document

import (
	"bytes"
	"strings"
	"unicode/utf8"

	perr "namematch/internal/platform/errors"
	pstrings "namematch/internal/platform/strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// Kinds reported by Detect
const (
	KindPDF  = "pdf"
	KindText = "text"
)

// Extractor converts document bytes to one string per page
type Extractor interface {
	Pages(data []byte) ([]string, error)
}

// Detect reports KindPDF or KindText for data, or an error for anything else
func Detect(data []byte) (string, error) {
	if len(data) == 0 {
		return KindText, nil
	}
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/pdf"):
		return KindPDF, nil
	case utf8.Valid(data):
		return KindText, nil
	default:
		return "", perr.WithOp(perr.DocumentParsef("unsupported document type %s", mt.String()), "document.Detect")
	}
}

// Auto dispatches on the detected kind
type Auto struct {
	PDF  PDF
	Text Text
}

// Pages implements Extractor
func (a Auto) Pages(data []byte) ([]string, error) {
	kind, err := Detect(data)
	if err != nil {
		return nil, err
	}
	if kind == KindPDF {
		return a.PDF.Pages(data)
	}
	return a.Text.Pages(data)
}

// Decode is Auto{}.Pages
func Decode(data []byte) ([]string, error) { return Auto{}.Pages(data) }

// Text reads UTF-8 plain text; form feeds separate pages
type Text struct{}

// Pages implements Extractor
func (Text) Pages(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, perr.WithOp(perr.DocumentParsef("document is not valid UTF-8 text"), "document.Text")
	}
	s := pstrings.TrimBOM(string(data))
	if strings.TrimSpace(s) == "" {
		return []string{}, nil
	}
	return strings.Split(s, "\f"), nil
}

// PDF extracts the plain text layer of each page. Scanned (image-only) pages
// come back empty; there is no OCR
type PDF struct{}

// Pages implements Extractor. The pdf reader panics on some malformed files,
// so panics are turned into DocumentParse errors
func (PDF) Pages(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, perr.WithOp(perr.DocumentParsef("corrupt PDF: %v", r), "document.PDF")
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, perr.WithOp(perr.Wrap(err, perr.ErrorCodeDocumentParse, "unreadable PDF"), "document.PDF")
	}

	n := r.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeDocumentParse, "page %d", i), "document.PDF")
		}
		pages = append(pages, text)
	}
	return pages, nil
}
