package service

import (
	"fmt"

	"wordlens/internal/domain"
)

// NewTextExtractor returns the extractor for engine
func NewTextExtractor(engine domain.PDFEngine, logger domain.Logger) (domain.TextExtractor, error) {
	switch engine {
	case domain.PDFEngineFitz, "":
		return NewFitzExtractor(logger), nil
	case domain.PDFEngineNative:
		return NewNativeExtractor(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPDFEngine, engine)
	}
}
