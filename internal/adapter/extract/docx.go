package extract

import (
	"bytes"
	"strings"

	"github.com/fumiama/go-docx"

	"finassist/internal/domain"
)

// extractDOCX concatenates paragraph text in document order, one
// paragraph per line. Tables and drawings are skipped.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &domain.ExtractionError{Format: "docx", Err: err}
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		if para, ok := item.(*docx.Paragraph); ok {
			sb.WriteString(para.String())
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}
