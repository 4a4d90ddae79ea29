package document

import (
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizforge/internal/config"
)

const (
	DefaultMaxPages = 20
	DefaultMaxChars = 50000
)

type Extractor interface {
	// Extract returns the document text, or "" when nothing could be read.
	Extract(r io.ReaderAt, size int64) string
}

type pdfExtractor struct {
	maxPages int
	maxChars int
}

func NewPDFExtractor(maxPages, maxChars int) Extractor {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &pdfExtractor{maxPages: maxPages, maxChars: maxChars}
}

func (e *pdfExtractor) Extract(r io.ReaderAt, size int64) (text string) {
	log := config.Logger.WithField("component", "pdf_extractor")

	// The pdf reader panics on some malformed files.
	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", rec).Warn("PDF extraction aborted")
			text = ""
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		log.WithError(err).Warn("Could not open PDF")
		return ""
	}

	var b strings.Builder
	pages := min(reader.NumPage(), e.maxPages)
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			log.WithError(err).WithField("page", i).Debug("Skipping unreadable page")
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
		if b.Len() >= e.maxChars*4 {
			break
		}
	}

	out := strings.TrimSpace(b.String())
	if runes := []rune(out); len(runes) > e.maxChars {
		out = string(runes[:e.maxChars])
	}

	log.WithFields(logrus.Fields{"pages": pages, "chars": len(out)}).Debug("PDF text extracted")
	return out
}
