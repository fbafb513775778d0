package extract

import (
	"io"
	"log"
	"net/http"
	"time"

	"finassist/internal/port"
)

// DefaultReportURL is the fixed location of the baseline document used
// to seed an empty index. Its chunks are stored under
// domain.DefaultSourceName.
const DefaultReportURL = "https://s2.q4cdn.com/299287126/files/doc_financials/2023/ar/Amazon-com-Inc-2023-Annual-Report.pdf"

// ReportFetcher downloads and extracts the default annual report. Any
// network or parse failure is logged and yields empty text so seeding
// degrades to an empty index instead of failing startup.
type ReportFetcher struct {
	url       string
	client    *http.Client
	extractor port.Extractor
}

func NewReportFetcher(extractor port.Extractor) *ReportFetcher {
	return &ReportFetcher{
		url:       DefaultReportURL,
		client:    &http.Client{Timeout: 120 * time.Second},
		extractor: extractor,
	}
}

// NewReportFetcherURL overrides the report location, for tests.
func NewReportFetcherURL(extractor port.Extractor, url string) *ReportFetcher {
	f := NewReportFetcher(extractor)
	f.url = url
	return f
}

func (f *ReportFetcher) Fetch() string {
	resp, err := f.client.Get(f.url)
	if err != nil {
		log.Printf("default report: fetch failed: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("default report: status %d from %s", resp.StatusCode, f.url)
		return ""
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("default report: read failed: %v", err)
		return ""
	}

	text, err := f.extractor.Extract(data, port.FormatPDF)
	if err != nil {
		log.Printf("default report: %v", err)
		return ""
	}

	return text
}
