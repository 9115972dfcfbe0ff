package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"

	"wordlens/internal/domain"
	"wordlens/pkg/metrics"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type contextKey string

const (
	requestIDContextKey contextKey = "request_id"
	requestIDHeader                = "X-Request-ID"
)

// RequestID tags every request with an id, reusing a client supplied
// X-Request-ID when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestIDFromContext returns the id set by RequestID
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey).(string)
	return id, ok
}

// RequestLogger logs every request and records HTTP metrics
type RequestLogger struct {
	logger domain.Logger
}

// NewRequestLogger creates a new request logging middleware
func NewRequestLogger(logger domain.Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

// Middleware wraps next
func (m *RequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snoop := httpsnoop.CaptureMetrics(next, w, r)

		route := routeTemplate(r)
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(snoop.Code)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(snoop.Duration.Seconds())

		requestID, _ := GetRequestIDFromContext(r.Context())
		fields := []interface{}{
			"method", r.Method,
			"path", r.URL.Path,
			"status", snoop.Code,
			"duration_ms", snoop.Duration.Milliseconds(),
			"bytes", snoop.Written,
			"request_id", requestID,
		}
		if snoop.Code >= http.StatusInternalServerError {
			m.logger.Warn("Request failed", fields...)
			return
		}
		m.logger.Info("Request handled", fields...)
	})
}

// Recoverer turns a panic into a 500 response
type Recoverer struct {
	logger domain.Logger
}

// NewRecoverer creates a new panic recovery middleware
func NewRecoverer(logger domain.Logger) *Recoverer {
	return &Recoverer{logger: logger}
}

// Middleware wraps next
func (m *Recoverer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			requestID, _ := GetRequestIDFromContext(r.Context())
			m.logger.Error("Panic while handling request", fmt.Errorf("panic: %v", rec),
				"path", r.URL.Path,
				"request_id", requestID,
				"stack", string(debug.Stack()),
			)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}

// routeTemplate keeps metric label cardinality bounded
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
