package port

// Format tags the declared encoding of a raw document byte stream.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// Extractor converts a raw document into plain text.
type Extractor interface {
	// Extract decodes data according to format. Failures are reported
	// as *domain.ExtractionError so batch callers can skip the file.
	Extract(data []byte, format Format) (string, error)
}

// DefaultDocumentFetcher retrieves the baseline document used to seed
// an empty index. Implementations return empty text on any failure so
// seeding degrades gracefully instead of blocking startup.
type DefaultDocumentFetcher interface {
	Fetch() string
}
