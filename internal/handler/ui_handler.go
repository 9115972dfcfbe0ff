package handler

import (
	"embed"
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"

	"wordlens/internal/domain"
	apperrors "wordlens/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const (
	pageTitle  = "Word Cloud + Charts from PDF"
	uploadInfo = "Please upload a PDF file to begin."
)

var headings = map[domain.VisualizationKind]string{
	domain.VisualizationCloud: "☁ Word Cloud",
	domain.VisualizationBar:   "📊 Top Words - Bar Chart",
	domain.VisualizationPie:   "🥧 Top Words - Pie Chart",
}

type pageLimits struct {
	MinMaxWords, MaxMaxWords int
	MinWidth, MaxWidth       int
	MinHeight, MaxHeight     int
}

type backgroundOption struct {
	Value    domain.BackgroundColor
	Selected bool
}

type pageImage struct {
	Kind    domain.VisualizationKind
	Heading string
	Src     template.URL
}

type pageData struct {
	Title          string
	Info           string
	Error          string
	Warning        string
	ShowSettings   bool
	Filename       string
	Text           string
	ExtraStopwords string
	Params         domain.RenderParameters
	Limits         pageLimits
	Backgrounds    []backgroundOption
	Images         []pageImage
}

// UIHandler serves the interactive HTML page
type UIHandler struct {
	analysis domain.AnalysisService
	config   domain.Config
	logger   domain.Logger
}

// NewUIHandler creates a new UI handler
func NewUIHandler(analysis domain.AnalysisService, config domain.Config, logger domain.Logger) *UIHandler {
	return &UIHandler{
		analysis: analysis,
		config:   config,
		logger:   logger,
	}
}

// Index shows the upload form
func (h *UIHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := h.newPage(h.config.GetRenderDefaults())
	page.Info = uploadInfo
	h.render(w, http.StatusOK, page)
}

// Upload runs the pipeline on an uploaded PDF
func (h *UIHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxSize := h.config.GetMaxFileSize()
	limitBody(w, r, maxSize)

	if err := parseForm(r, maxSize); err != nil {
		h.renderError(w, h.newPage(h.config.GetRenderDefaults()), err)
		return
	}

	page := h.newPage(h.config.GetRenderDefaults())
	doc, err := readUpload(r, maxSize)
	if err != nil {
		if errors.Is(err, domain.ErrFileRequired) {
			page.Info = uploadInfo
			h.render(w, http.StatusOK, page)
			return
		}
		h.renderError(w, page, err)
		return
	}

	params, err := parseRenderParameters(r, h.config.GetRenderDefaults())
	if err != nil {
		h.renderError(w, page, apperrors.NewValidationError("Invalid settings", err.Error()))
		return
	}

	h.analyze(w, r, page, &domain.AnalysisRequest{
		Document:       doc,
		ExtraStopwords: r.FormValue("stopwords"),
		Params:         params,
		IncludeImages:  true,
	})
}

// Rerender repeats the analysis with new settings for text that was already
// extracted. The text travels in a hidden form field, so no state is kept
// between requests.
func (h *UIHandler) Rerender(w http.ResponseWriter, r *http.Request) {
	maxSize := h.config.GetMaxFileSize()
	limitBody(w, r, maxSize)

	page := h.newPage(h.config.GetRenderDefaults())
	if err := parseForm(r, maxSize); err != nil {
		h.renderError(w, page, err)
		return
	}

	text := r.FormValue("text")
	if text == "" {
		page.Info = uploadInfo
		h.render(w, http.StatusOK, page)
		return
	}

	params, err := parseRenderParameters(r, h.config.GetRenderDefaults())
	if err != nil {
		h.renderError(w, page, apperrors.NewValidationError("Invalid settings", err.Error()))
		return
	}

	page.Filename = r.FormValue("filename")
	h.analyze(w, r, page, &domain.AnalysisRequest{
		Text:           text,
		ExtraStopwords: r.FormValue("stopwords"),
		Params:         params,
		IncludeImages:  true,
	})
}

func (h *UIHandler) analyze(w http.ResponseWriter, r *http.Request, page *pageData, req *domain.AnalysisRequest) {
	page.Params = req.Params
	page.Backgrounds = backgroundOptions(req.Params.Background)
	page.ExtraStopwords = req.ExtraStopwords

	result, err := h.analysis.Analyze(r.Context(), req)
	if err != nil {
		h.renderError(w, page, err)
		return
	}

	if result.Filename != "" {
		page.Filename = result.Filename
	}
	page.Error = result.Error
	page.Warning = result.Warning
	// Settings stay visible whenever there is text, so stopwords that
	// removed every word can be changed again.
	if !(&domain.ExtractedText{Text: result.Text}).IsBlank() {
		page.ShowSettings = true
		page.Text = result.Text
	}

	for _, kind := range []domain.VisualizationKind{domain.VisualizationCloud, domain.VisualizationBar, domain.VisualizationPie} {
		img := result.Images.Get(kind)
		if len(img) == 0 {
			continue
		}
		page.Images = append(page.Images, pageImage{
			Kind:    kind,
			Heading: headings[kind],
			Src:     template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img)),
		})
	}

	h.render(w, http.StatusOK, page)
}

func (h *UIHandler) newPage(params domain.RenderParameters) *pageData {
	return &pageData{
		Title:  pageTitle,
		Params: params,
		Limits: pageLimits{
			MinMaxWords: domain.MinMaxWords, MaxMaxWords: domain.MaxMaxWords,
			MinWidth: domain.MinWidth, MaxWidth: domain.MaxWidth,
			MinHeight: domain.MinHeight, MaxHeight: domain.MaxHeight,
		},
		Backgrounds: backgroundOptions(params.Background),
	}
}

func backgroundOptions(selected domain.BackgroundColor) []backgroundOption {
	opts := make([]backgroundOption, 0, len(domain.BackgroundColors))
	for _, bg := range domain.BackgroundColors {
		opts = append(opts, backgroundOption{Value: bg, Selected: bg == selected})
	}
	return opts
}

func (h *UIHandler) renderError(w http.ResponseWriter, page *pageData, err error) {
	status := apperrors.GetStatusCode(err)
	if appErr, ok := apperrors.As(err); ok && appErr.Type != apperrors.ErrorTypeInternal {
		page.Error = appErr.UserMessage()
	} else {
		h.logger.Error("Page request failed", err)
		page.Error = "Something went wrong while rendering the visualizations."
	}
	h.render(w, status, page)
}

func (h *UIHandler) render(w http.ResponseWriter, status int, page *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, page); err != nil {
		h.logger.Error("Failed to render page", err)
	}
}
