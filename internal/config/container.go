package config

import (
	"fmt"

	"wordlens/internal/domain"
	"wordlens/internal/infra/chart"
	"wordlens/internal/infra/wordcloud"
	"wordlens/internal/service"
	"wordlens/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	Extractor       domain.TextExtractor
	Counter         *service.FrequencyCounter
	CloudRenderer   domain.CloudRenderer
	ChartRenderer   domain.ChartRenderer
	AnalysisService domain.AnalysisService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config, err := NewConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	appLogger := logger.NewLogger(config.GetLogLevel(), config.GetLogFormat())

	extractor, err := service.NewTextExtractor(config.GetPDFEngine(), appLogger)
	if err != nil {
		return nil, err
	}

	cloud, err := wordcloud.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("init word cloud renderer: %w", err)
	}
	charts := chart.NewRenderer()

	counter := service.NewFrequencyCounter(config.GetStopwordCaseMode(), config.GetExtraBuiltinStopwords())
	analysis := service.NewAnalysisService(extractor, counter, cloud, charts, config.GetApplyMaxWords(), appLogger)

	appLogger.Info("Container initialized",
		"pdf_engine", extractor.Engine(),
		"stopword_case_mode", counter.CaseMode(),
		"apply_max_words", config.GetApplyMaxWords(),
		"max_file_size", config.GetMaxFileSize(),
	)

	return &Container{
		Config:          config,
		Logger:          appLogger,
		Extractor:       extractor,
		Counter:         counter,
		CloudRenderer:   cloud,
		ChartRenderer:   charts,
		AnalysisService: analysis,
	}, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetAnalysisService returns the pipeline
func (c *Container) GetAnalysisService() domain.AnalysisService {
	return c.AnalysisService
}
