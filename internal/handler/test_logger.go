package handler

import (
	"fmt"
	"strings"
	"sync"

	"wordlens/internal/domain"
)

// Mock logger used by handler package tests.
type MockHandlerLogger struct {
	mu    sync.Mutex
	lines []string
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

var _ domain.Logger = (*MockHandlerLogger)(nil)

func (l *MockHandlerLogger) add(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{}) { l.add("INFO " + msg) }
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {
	l.add(fmt.Sprintf("ERROR %s: %v", msg, err))
}
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{}) { l.add("DEBUG " + msg) }
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})  { l.add("WARN " + msg) }

func (l *MockHandlerLogger) Contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
