package config

import (
	"errors"
	"testing"

	"wordlens/internal/domain"
)

func TestNewContainer(t *testing.T) {
	clearEnv(t)
	t.Setenv("PDF_ENGINE", "native")
	t.Setenv("LOG_LEVEL", "error")

	container, err := NewContainer()
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.GetConfig() == nil || container.GetConfig().GetPDFEngine() != domain.PDFEngineNative {
		t.Fatalf("expected native engine config, got %+v", container.GetConfig())
	}
	if container.GetLogger() == nil {
		t.Fatal("expected logger")
	}
	if container.GetAnalysisService() == nil {
		t.Fatal("expected analysis service")
	}
	if container.Extractor.Engine() != domain.PDFEngineNative {
		t.Fatalf("expected native extractor, got %s", container.Extractor.Engine())
	}
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("PDF_ENGINE", "poppler")

	if _, err := NewContainer(); !errors.Is(err, domain.ErrUnknownPDFEngine) {
		t.Fatalf("expected ErrUnknownPDFEngine, got %v", err)
	}
}
