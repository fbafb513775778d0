package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"finassist/internal/domain"
)

// extractPDF concatenates the plain text of every page in document
// order, one newline between pages.
func extractPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed xref tables; fold those
	// into the same extraction error the caller already handles.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &domain.ExtractionError{Format: "pdf", Err: fmt.Errorf("malformed document: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &domain.ExtractionError{Format: "pdf", Err: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &domain.ExtractionError{Format: "pdf", Err: fmt.Errorf("page %d: %w", i, err)}
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
