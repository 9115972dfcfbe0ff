package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"wordlens/internal/domain"

	"gopkg.in/yaml.v3"
)

const defaultMaxFileSize int64 = 50 * 1024 * 1024

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort            string
	MaxFileSize           int64
	LogLevel              string
	LogFormat             string
	PDFEngine             domain.PDFEngine
	StopwordCaseMode      domain.StopwordCaseMode
	ApplyMaxWords         bool
	CORSOrigins           []string
	ExtraBuiltinStopwords []string
	RenderDefaults        domain.RenderParameters
}

// FileConfig is the optional YAML file named by CONFIG_FILE. Environment
// variables override the values it holds.
type FileConfig struct {
	Stopwords []string `yaml:"stopwords"`
	Render    struct {
		MaxWords   int    `yaml:"max_words"`
		Width      int    `yaml:"width"`
		Height     int    `yaml:"height"`
		Background string `yaml:"background"`
	} `yaml:"render"`
}

// NewConfig creates a new configuration instance with default values
func NewConfig() (domain.Config, error) {
	cfg := &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:       getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		MaxFileSize:      getEnvInt64OrDefault("MAX_FILE_SIZE", defaultMaxFileSize),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        getEnvOrDefault("LOG_FORMAT", "text"),
		PDFEngine:        domain.PDFEngine(strings.ToLower(getEnvOrDefault("PDF_ENGINE", string(domain.PDFEngineFitz)))),
		StopwordCaseMode: domain.StopwordCaseMode(strings.ToLower(getEnvOrDefault("STOPWORD_CASE_MODE", string(domain.StopwordCaseFold)))),
		ApplyMaxWords:    getEnvBoolOrDefault("APPLY_MAX_WORDS", true),
		CORSOrigins:      splitList(getEnvOrDefault("CORS_ORIGINS", "*")),
		RenderDefaults:   domain.DefaultRenderParameters(),
	}

	switch cfg.StopwordCaseMode {
	case domain.StopwordCaseFold, domain.StopwordCasePreserve:
	default:
		return nil, fmt.Errorf("invalid STOPWORD_CASE_MODE %q: want fold or preserve", cfg.StopwordCaseMode)
	}
	switch cfg.PDFEngine {
	case domain.PDFEngineFitz, domain.PDFEngineNative:
	default:
		return nil, fmt.Errorf("%w: PDF_ENGINE=%q", domain.ErrUnknownPDFEngine, cfg.PDFEngine)
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = defaultMaxFileSize
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *AppConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	c.ExtraBuiltinStopwords = fc.Stopwords

	defaults := c.RenderDefaults
	if fc.Render.MaxWords != 0 {
		defaults.MaxWords = fc.Render.MaxWords
	}
	if fc.Render.Width != 0 {
		defaults.Width = fc.Render.Width
	}
	if fc.Render.Height != 0 {
		defaults.Height = fc.Render.Height
	}
	if fc.Render.Background != "" {
		bg, err := domain.ParseBackgroundColor(fc.Render.Background)
		if err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		defaults.Background = bg
	}
	if err := defaults.Validate(); err != nil {
		return fmt.Errorf("config file %s: render defaults: %w", path, err)
	}
	c.RenderDefaults = defaults
	return nil
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns "json" or "text"
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetPDFEngine returns the configured extraction backend
func (c *AppConfig) GetPDFEngine() domain.PDFEngine {
	return c.PDFEngine
}

// GetStopwordCaseMode returns how extra stopwords are matched
func (c *AppConfig) GetStopwordCaseMode() domain.StopwordCaseMode {
	return c.StopwordCaseMode
}

// GetApplyMaxWords reports whether the max words setting reaches the cloud layout
func (c *AppConfig) GetApplyMaxWords() bool {
	return c.ApplyMaxWords
}

// GetCORSOrigins returns the allowed CORS origins
func (c *AppConfig) GetCORSOrigins() []string {
	return c.CORSOrigins
}

// GetExtraBuiltinStopwords returns stopwords added to the built-in list
func (c *AppConfig) GetExtraBuiltinStopwords() []string {
	return c.ExtraBuiltinStopwords
}

// GetRenderDefaults returns the initial render settings
func (c *AppConfig) GetRenderDefaults() domain.RenderParameters {
	return c.RenderDefaults
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
