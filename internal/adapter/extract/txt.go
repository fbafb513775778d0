package extract

import (
	"fmt"
	"unicode/utf8"

	"finassist/internal/domain"
)

// extractTXT decodes the byte stream as UTF-8 text.
func extractTXT(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &domain.ExtractionError{Format: "txt", Err: fmt.Errorf("not valid UTF-8")}
	}
	return string(data), nil
}
