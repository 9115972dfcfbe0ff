package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"wordlens/internal/domain"
)

// MockLogger records log lines for assertions.
type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{messages: []string{}}
}

func (m *MockLogger) record(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) Info(msg string, args ...interface{})  { m.record("INFO: " + msg) }
func (m *MockLogger) Debug(msg string, args ...interface{}) { m.record("DEBUG: " + msg) }
func (m *MockLogger) Warn(msg string, args ...interface{})  { m.record("WARN: " + msg) }
func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.record(fmt.Sprintf("ERROR: %s - %v", msg, err))
}

func (m *MockLogger) Contains(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range m.messages {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// MockExtractor returns canned text or an error.
type MockExtractor struct {
	text  string
	err   error
	calls int
}

func (m *MockExtractor) Engine() domain.PDFEngine { return "mock" }

func (m *MockExtractor) Extract(ctx context.Context, data []byte) (*domain.ExtractedText, error) {
	m.calls++
	if m.err != nil {
		return &domain.ExtractedText{Engine: "mock"}, m.err
	}
	return &domain.ExtractedText{Text: m.text, PageCount: 1, Engine: "mock"}, nil
}

// MockCloudRenderer captures the parameters it was called with.
type MockCloudRenderer struct {
	mu     sync.Mutex
	params []domain.RenderParameters
	err    error
}

func (m *MockCloudRenderer) RenderCloud(ctx context.Context, freq *domain.FrequencyMap, params domain.RenderParameters) ([]byte, error) {
	m.mu.Lock()
	m.params = append(m.params, params)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return []byte("cloud-png"), nil
}

func (m *MockCloudRenderer) Calls() []domain.RenderParameters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.RenderParameters(nil), m.params...)
}

// MockChartRenderer captures the ranked words it was given.
type MockChartRenderer struct {
	mu      sync.Mutex
	barTop  []domain.WordCount
	pieTop  []domain.WordCount
	barErr  error
	renders int
}

func (m *MockChartRenderer) RenderBar(ctx context.Context, top []domain.WordCount) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renders++
	m.barTop = top
	if m.barErr != nil {
		return nil, m.barErr
	}
	return []byte("bar-png"), nil
}

func (m *MockChartRenderer) RenderPie(ctx context.Context, top []domain.WordCount) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renders++
	m.pieTop = top
	return []byte("pie-png"), nil
}

func (m *MockChartRenderer) Renders() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renders
}

// buildTestPDF writes a minimal PDF with one text line per page. An empty
// string produces a page without text.
func buildTestPDF(pages ...string) []byte {
	var buf bytes.Buffer
	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	for i, text := range pages {
		writeObj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		content := ""
		if text != "" {
			content = fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		}
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}
