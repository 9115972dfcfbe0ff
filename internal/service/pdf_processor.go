package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wordlens/internal/domain"
	apperrors "wordlens/pkg/errors"

	"github.com/gen2brain/go-fitz"
)

const defaultPageTimeout = 90 * time.Second

// FitzExtractor extracts text with MuPDF.
type FitzExtractor struct {
	logger      domain.Logger
	pageTimeout time.Duration
}

// NewFitzExtractor creates a MuPDF backed extractor
func NewFitzExtractor(logger domain.Logger) *FitzExtractor {
	return &FitzExtractor{
		logger:      logger,
		pageTimeout: defaultPageTimeout,
	}
}

// Engine returns the engine name
func (e *FitzExtractor) Engine() domain.PDFEngine {
	return domain.PDFEngineFitz
}

// Extract opens the document from memory and concatenates the text of all
// pages. Pages that fail or time out contribute an empty string.
func (e *FitzExtractor) Extract(ctx context.Context, data []byte) (result *domain.ExtractedText, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = &domain.ExtractedText{Engine: domain.PDFEngineFitz}
			err = apperrors.NewProcessingError("failed to open PDF", fmt.Errorf("mupdf: %v", r))
		}
	}()

	// MuPDF sniffs the content type and would open EPUB or XPS as well.
	if !domain.HasPDFHeader(data) {
		return &domain.ExtractedText{Engine: domain.PDFEngineFitz}, apperrors.NewProcessingError("failed to open PDF", domain.ErrInvalidFile)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return &domain.ExtractedText{Engine: domain.PDFEngineFitz}, apperrors.NewProcessingError("failed to open PDF", err)
	}
	// A timed out page keeps running in the background; the document is
	// closed only once every page goroutine has returned.
	var inflight sync.WaitGroup
	defer func() {
		go func() {
			inflight.Wait()
			_ = doc.Close()
		}()
	}()

	numPages := doc.NumPage()
	result = &domain.ExtractedText{
		PageCount: numPages,
		Engine:    domain.PDFEngineFitz,
	}

	type pageResult struct {
		text string
		err  error
	}

	pages := make([]string, numPages)
	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return &domain.ExtractedText{Engine: domain.PDFEngineFitz}, apperrors.NewProcessingError("extraction cancelled", err)
		}

		e.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages)
		resultCh := make(chan pageResult, 1)
		inflight.Add(1)
		go func(idx int) {
			defer inflight.Done()
			t, err := doc.Text(idx)
			resultCh <- pageResult{text: t, err: err}
		}(pageNum)

		var text string
		var err error
		select {
		case res := <-resultCh:
			text, err = res.text, res.err
		case <-time.After(e.pageTimeout):
			err = fmt.Errorf("timeout after %v", e.pageTimeout)
		case <-ctx.Done():
			return &domain.ExtractedText{Engine: domain.PDFEngineFitz}, apperrors.NewProcessingError("extraction cancelled", ctx.Err())
		}

		if err != nil {
			e.logger.Warn("Failed to extract text from page", "page_num", pageNum+1, "total", numPages, "error", err)
			result.FailedPages = append(result.FailedPages, pageNum+1)
			continue
		}
		pages[pageNum] = text
	}

	result.Text = domain.JoinPages(pages)
	return result, nil
}
