package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"wordlens/internal/domain"
)

type mockConfig struct {
	maxFileSize int64
}

func (c *mockConfig) GetServerPort() string    { return "8080" }
func (c *mockConfig) GetMaxFileSize() int64    { return c.maxFileSize }
func (c *mockConfig) GetLogLevel() string      { return "info" }
func (c *mockConfig) GetLogFormat() string     { return "text" }
func (c *mockConfig) GetApplyMaxWords() bool   { return true }
func (c *mockConfig) GetCORSOrigins() []string { return []string{"*"} }
func (c *mockConfig) GetPDFEngine() domain.PDFEngine {
	return domain.PDFEngineNative
}
func (c *mockConfig) GetStopwordCaseMode() domain.StopwordCaseMode {
	return domain.StopwordCaseFold
}
func (c *mockConfig) GetExtraBuiltinStopwords() []string { return nil }
func (c *mockConfig) GetRenderDefaults() domain.RenderParameters {
	return domain.DefaultRenderParameters()
}

func newMockConfig() *mockConfig {
	return &mockConfig{maxFileSize: 1 << 20}
}

type mockAnalysisService struct {
	result  *domain.AnalysisResult
	image   []byte
	err     error
	lastReq *domain.AnalysisRequest
	kind    domain.VisualizationKind
}

func (m *mockAnalysisService) Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockAnalysisService) RenderVisualization(ctx context.Context, kind domain.VisualizationKind, req *domain.AnalysisRequest) ([]byte, *domain.AnalysisResult, error) {
	m.lastReq = req
	m.kind = kind
	if m.err != nil {
		return nil, m.result, m.err
	}
	return m.image, m.result, nil
}

// renderedResult is what the pipeline returns for the cat sentence.
func renderedResult() *domain.AnalysisResult {
	freq := domain.FrequencyMapFromEntries([]domain.WordCount{{Word: "cat", Count: 2}, {Word: "sat", Count: 1}, {Word: "mat", Count: 1}, {Word: "ran", Count: 1}})
	return &domain.AnalysisResult{
		Filename:    "cats.pdf",
		Text:        "the cat sat on the mat the cat ran",
		Stats:       domain.TokenStats{TotalTokens: 9, FilteredTokens: 4},
		Frequencies: freq,
		TopWords:    freq.MostCommon(domain.ChartTopN),
		Params:      domain.DefaultRenderParameters(),
		Images: &domain.Visualizations{
			Cloud: []byte("cloud"),
			Bar:   []byte("bar"),
			Pie:   []byte("pie"),
		},
	}
}

func newTestRouter(svc domain.AnalysisService, cfg domain.Config) http.Handler {
	logger := NewMockHandlerLogger()
	return NewRouter(
		NewUIHandler(svc, cfg, logger),
		NewAPIHandler(svc, cfg, logger),
		cfg.GetCORSOrigins(),
		RequestID,
	)
}

// newUploadRequest builds a multipart request. An empty filename omits the
// file part.
func newUploadRequest(t *testing.T, target, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = part.Write(content)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newFormRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
