package pdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// MaxDocumentSize is the largest attachment that will be downloaded
	MaxDocumentSize = 20 << 20
	MIMEType        = "application/pdf"
)

// IsPDF reports whether an attachment looks like a PDF, by content type or
// file extension.
func IsPDF(contentType, filename string) bool {
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == MIMEType {
			return true
		}
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// Extractor turns PDF bytes into plain text
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an Extractor
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// ExtractText returns the text of every non-blank page joined by a blank
// line. Pages that fail are skipped. It returns "" when the document cannot
// be parsed or holds no text (scanned images, encryption).
func (e *Extractor) ExtractText(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("pdf parser panicked", "error", fmt.Sprint(r))
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Error("failed to open pdf",
			"size_bytes", len(data),
			"error", err)
		return ""
	}

	numPages := reader.NumPage()
	e.logger.Info("extracting pdf text", "pages", numPages, "size_bytes", len(data))

	var parts []string
	for i := 1; i <= numPages; i++ {
		pageText, err := e.pageText(reader, i)
		if err != nil {
			e.logger.Warn("skipping pdf page",
				"page", i,
				"error", err)
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			parts = append(parts, pageText)
		}
	}

	text = strings.Join(parts, "\n\n")
	if strings.TrimSpace(text) == "" {
		e.logger.Warn("pdf contains no extractable text", "pages", numPages)
		return ""
	}

	e.logger.Info("extracted pdf text", "pages", numPages, "text_length", len(text))
	return text
}

func (e *Extractor) pageText(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", num, r)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
