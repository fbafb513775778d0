package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"finassist/internal/domain"
	"finassist/internal/port"
)

// Service converts raw document bytes into plain text. One handler per
// format, resolved once at ingestion time.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// FormatForPath infers the document format from the file extension.
// The second return is false for unsupported extensions; ingestion
// skips those files.
func FormatForPath(path string) (port.Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return port.FormatPDF, true
	case ".docx":
		return port.FormatDOCX, true
	case ".txt":
		return port.FormatTXT, true
	default:
		return "", false
	}
}

// Extract decodes data according to the declared format. All failures
// come back as *domain.ExtractionError naming the format.
func (s *Service) Extract(data []byte, format port.Format) (string, error) {
	switch format {
	case port.FormatPDF:
		return extractPDF(data)
	case port.FormatDOCX:
		return extractDOCX(data)
	case port.FormatTXT:
		return extractTXT(data)
	default:
		return "", &domain.ExtractionError{
			Format: string(format),
			Err:    fmt.Errorf("unsupported format"),
		}
	}
}
