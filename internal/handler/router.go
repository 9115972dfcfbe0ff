package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured. The
// middlewares also wrap the 404 and 405 handlers, which mux runs outside
// its own middleware chain.
func NewRouter(ui *UIHandler, api *APIHandler, corsOrigins []string, middlewares ...mux.MiddlewareFunc) http.Handler {
	router := mux.NewRouter()
	for _, mw := range middlewares {
		router.Use(mw)
	}
	router.NotFoundHandler = chain(http.HandlerFunc(notFound), middlewares)
	router.MethodNotAllowedHandler = chain(http.HandlerFunc(methodNotAllowed), middlewares)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"wordlens"}`))
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Web UI
	router.HandleFunc("/", ui.Index).Methods(http.MethodGet)
	router.HandleFunc("/", ui.Upload).Methods(http.MethodPost)
	router.HandleFunc("/render", ui.Rerender).Methods(http.MethodPost)

	// API
	router.HandleFunc("/api/v1/analyze", api.Analyze).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/visualizations/{kind}", api.Visualization).Methods(http.MethodPost)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			requestIDHeader,
		},
		ExposedHeaders: []string{
			requestIDHeader,
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}

// chain applies middlewares so the first one is outermost, as router.Use does.
func chain(h http.Handler, middlewares []mux.MiddlewareFunc) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
