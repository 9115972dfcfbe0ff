package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"wordlens/internal/domain"

	"github.com/sirupsen/logrus"
)

// AppLogger implements the domain.Logger interface on top of logrus
type AppLogger struct {
	logger *logrus.Logger
}

// NewLogger creates a new logger instance writing to stdout
func NewLogger(levelStr, format string) domain.Logger {
	return NewLoggerWithOutput(os.Stdout, levelStr, format)
}

// NewLoggerWithOutput creates a logger writing to w
func NewLoggerWithOutput(w io.Writer, levelStr, format string) domain.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(parseLogLevel(levelStr))

	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   true,
		})
	}

	return &AppLogger{logger: logger}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	l.logger.WithFields(toFields(fields)).Info(msg)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	entry := l.logger.WithFields(toFields(fields))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(msg)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	l.logger.WithFields(toFields(fields)).Debug(msg)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	l.logger.WithFields(toFields(fields)).Warn(msg)
}

// toFields converts alternating key/value pairs. A trailing key without a
// value is kept under "extra".
func toFields(kv []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(kv)/2+1)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			fields["extra"] = key
			break
		}
		fields[key] = kv[i+1]
	}
	return fields
}

// parseLogLevel converts string log level to a logrus level, defaulting to info
func parseLogLevel(levelStr string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(levelStr))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
