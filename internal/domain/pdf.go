package domain

import (
	"bytes"
	"strings"
)

// PDFEngine names a text extraction backend
type PDFEngine string

const (
	PDFEngineFitz   PDFEngine = "fitz"
	PDFEngineNative PDFEngine = "native"
)

// pdfHeaderWindow is how far into a file readers look for the header.
const pdfHeaderWindow = 1024

var pdfHeader = []byte("%PDF-")

// HasPDFHeader reports whether data carries a PDF header near its start.
// Other document formats that a content sniffing engine would accept do not.
func HasPDFHeader(data []byte) bool {
	if len(data) > pdfHeaderWindow {
		data = data[:pdfHeaderWindow]
	}
	return bytes.Contains(data, pdfHeader)
}

// ExtractedText is the plain text of a document, one entry per page joined
// by single spaces. Pages that failed to extract contribute an empty string.
type ExtractedText struct {
	Text        string    `json:"-"`
	PageCount   int       `json:"page_count"`
	FailedPages []int     `json:"failed_pages,omitempty"`
	Engine      PDFEngine `json:"engine"`
}

// IsBlank reports whether the text holds nothing but whitespace
func (t *ExtractedText) IsBlank() bool {
	return t == nil || strings.TrimSpace(t.Text) == ""
}

// JoinPages concatenates per-page text the way every extractor must.
func JoinPages(pages []string) string {
	return strings.Join(pages, " ")
}

// UploadedFile is a raw document received from a client. It only lives for
// the duration of one request.
type UploadedFile struct {
	Filename string
	Data     []byte
}

// Size returns the number of bytes received
func (f *UploadedFile) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}
