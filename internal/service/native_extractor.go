package service

import (
	"bytes"
	"context"
	"fmt"

	"wordlens/internal/domain"
	apperrors "wordlens/pkg/errors"

	"github.com/ledongthuc/pdf"
)

// NativeExtractor extracts text with a pure Go PDF reader. It needs no
// system libraries but handles fewer font encodings than MuPDF.
type NativeExtractor struct {
	logger domain.Logger
}

// NewNativeExtractor creates a pure Go extractor
func NewNativeExtractor(logger domain.Logger) *NativeExtractor {
	return &NativeExtractor{logger: logger}
}

// Engine returns the engine name
func (e *NativeExtractor) Engine() domain.PDFEngine {
	return domain.PDFEngineNative
}

// Extract reads every page and joins their text with single spaces.
// The reader panics on some malformed input; panics are turned into errors.
func (e *NativeExtractor) Extract(ctx context.Context, data []byte) (result *domain.ExtractedText, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = &domain.ExtractedText{Engine: domain.PDFEngineNative}
			err = apperrors.NewProcessingError("failed to open PDF", fmt.Errorf("malformed document: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return &domain.ExtractedText{Engine: domain.PDFEngineNative}, apperrors.NewProcessingError("failed to open PDF", err)
	}

	numPages := reader.NumPage()
	result = &domain.ExtractedText{
		PageCount: numPages,
		Engine:    domain.PDFEngineNative,
	}

	pages := make([]string, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return &domain.ExtractedText{Engine: domain.PDFEngineNative}, apperrors.NewProcessingError("extraction cancelled", err)
		}

		text, pageErr := e.pageText(reader, i)
		if pageErr != nil {
			e.logger.Warn("Failed to extract text from page", "page_num", i, "total", numPages, "error", pageErr)
			result.FailedPages = append(result.FailedPages, i)
			continue
		}
		pages[i-1] = text
	}

	result.Text = domain.JoinPages(pages)
	return result, nil
}

func (e *NativeExtractor) pageText(reader *pdf.Reader, num int) (text string, err error) {
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
