package domain

import "context"

// TextExtractor turns raw PDF bytes into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (*ExtractedText, error)
	Engine() PDFEngine
}

// CloudRenderer draws a word cloud as a PNG.
type CloudRenderer interface {
	RenderCloud(ctx context.Context, freq *FrequencyMap, params RenderParameters) ([]byte, error)
}

// ChartRenderer draws bar and pie charts of ranked words as PNGs.
type ChartRenderer interface {
	RenderBar(ctx context.Context, top []WordCount) ([]byte, error)
	RenderPie(ctx context.Context, top []WordCount) ([]byte, error)
}

// AnalysisService runs the extract, count and render pipeline.
type AnalysisService interface {
	Analyze(ctx context.Context, req *AnalysisRequest) (*AnalysisResult, error)
	RenderVisualization(ctx context.Context, kind VisualizationKind, req *AnalysisRequest) ([]byte, *AnalysisResult, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetPDFEngine() PDFEngine
	GetStopwordCaseMode() StopwordCaseMode
	GetApplyMaxWords() bool
	GetCORSOrigins() []string
	GetExtraBuiltinStopwords() []string
	GetRenderDefaults() RenderParameters
}
