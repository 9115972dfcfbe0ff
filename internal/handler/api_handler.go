package handler

import (
	"errors"
	"net/http"
	"strings"

	"wordlens/internal/domain"
	apperrors "wordlens/pkg/errors"

	"github.com/gorilla/mux"
)

// APIHandler exposes the pipeline as JSON and PNG endpoints
type APIHandler struct {
	analysis domain.AnalysisService
	config   domain.Config
	logger   domain.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(analysis domain.AnalysisService, config domain.Config, logger domain.Logger) *APIHandler {
	return &APIHandler{
		analysis: analysis,
		config:   config,
		logger:   logger,
	}
}

// Analyze handles POST /api/v1/analyze. Images are included as base64 when
// the include_images field is true.
func (h *APIHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, err := h.buildRequest(w, r)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	req.IncludeImages = formBool(r, "include_images")

	result, err := h.analysis.Analyze(r.Context(), req)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Visualization handles POST /api/v1/visualizations/{kind} and responds
// with a PNG image.
func (h *APIHandler) Visualization(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseVisualizationKind(mux.Vars(r)["kind"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown visualization. Use cloud, bar or pie.")
		return
	}

	req, err := h.buildRequest(w, r)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	img, _, err := h.analysis.RenderVisualization(r.Context(), kind, req)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

// buildRequest accepts either a "file" upload or a plain "text" field.
func (h *APIHandler) buildRequest(w http.ResponseWriter, r *http.Request) (*domain.AnalysisRequest, error) {
	maxSize := h.config.GetMaxFileSize()
	limitBody(w, r, maxSize)
	if err := parseForm(r, maxSize); err != nil {
		return nil, err
	}

	params, err := parseRenderParameters(r, h.config.GetRenderDefaults())
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid render parameters", err.Error())
	}
	req := &domain.AnalysisRequest{
		ExtraStopwords: r.FormValue("stopwords"),
		Params:         params,
	}

	doc, err := readUpload(r, maxSize)
	switch {
	case err == nil:
		req.Document = doc
	case errors.Is(err, domain.ErrFileRequired) && strings.TrimSpace(r.FormValue("text")) != "":
		req.Text = r.FormValue("text")
	default:
		return nil, err
	}
	return req, nil
}
