package extract

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"finassist/internal/domain"
	"finassist/internal/port"
)

func TestFormatForPath(t *testing.T) {
	cases := []struct {
		path   string
		format port.Format
		ok     bool
	}{
		{"report.pdf", port.FormatPDF, true},
		{"notes.DOCX", port.FormatDOCX, true},
		{"/tmp/a/b/readme.txt", port.FormatTXT, true},
		{"image.png", "", false},
		{"noext", "", false},
	}

	for _, tc := range cases {
		format, ok := FormatForPath(tc.path)
		if ok != tc.ok || format != tc.format {
			t.Errorf("FormatForPath(%q) = (%q, %v), want (%q, %v)", tc.path, format, ok, tc.format, tc.ok)
		}
	}
}

func TestExtractTXT(t *testing.T) {
	s := NewService()

	text, err := s.Extract([]byte("plain utf-8 text\n"), port.FormatTXT)
	if err != nil {
		t.Fatal(err)
	}
	if text != "plain utf-8 text\n" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestExtractTXTInvalidUTF8(t *testing.T) {
	s := NewService()

	_, err := s.Extract([]byte{0xff, 0xfe, 0xfd}, port.FormatTXT)
	var extractErr *domain.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extractErr.Format != "txt" {
		t.Errorf("expected format txt in error, got %q", extractErr.Format)
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	s := NewService()

	_, err := s.Extract([]byte("%PDF-1.4 this is not really a pdf"), port.FormatPDF)
	var extractErr *domain.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError for corrupt pdf, got %v", err)
	}
}

func TestExtractCorruptDOCX(t *testing.T) {
	s := NewService()

	_, err := s.Extract([]byte("not a zip archive"), port.FormatDOCX)
	var extractErr *domain.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError for corrupt docx, got %v", err)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	s := NewService()

	_, err := s.Extract([]byte("data"), port.Format("csv"))
	var extractErr *domain.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestReportFetcherDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewReportFetcherURL(NewService(), srv.URL)
	if text := f.Fetch(); text != "" {
		t.Errorf("expected empty text on fetch failure, got %d bytes", len(text))
	}
}

func TestReportFetcherUnreachableHost(t *testing.T) {
	f := NewReportFetcherURL(NewService(), "http://127.0.0.1:1/never")
	if text := f.Fetch(); text != "" {
		t.Error("expected empty text when the host is unreachable")
	}
}
