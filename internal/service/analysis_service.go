package service

import (
	"context"
	"fmt"
	"time"

	"wordlens/internal/domain"
	apperrors "wordlens/pkg/errors"
	"wordlens/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// AnalysisService runs the extract, count and render pipeline. It keeps no
// state between calls.
type AnalysisService struct {
	extractor     domain.TextExtractor
	counter       *FrequencyCounter
	cloud         domain.CloudRenderer
	charts        domain.ChartRenderer
	applyMaxWords bool
	logger        domain.Logger
}

// NewAnalysisService creates a new analysis service. When applyMaxWords is
// false the requested word limit is ignored and the cloud layout uses its
// own default cap.
func NewAnalysisService(
	extractor domain.TextExtractor,
	counter *FrequencyCounter,
	cloud domain.CloudRenderer,
	charts domain.ChartRenderer,
	applyMaxWords bool,
	logger domain.Logger,
) *AnalysisService {
	return &AnalysisService{
		extractor:     extractor,
		counter:       counter,
		cloud:         cloud,
		charts:        charts,
		applyMaxWords: applyMaxWords,
		logger:        logger,
	}
}

// Analyze extracts text when a document is attached, counts words and, if
// requested, renders all three visualizations.
//
// Extraction failures are soft: the message is stored in result.Error and
// the pipeline continues with empty text. Blank text and an empty frequency
// map stop the pipeline with a warning. Render failures are returned.
func (s *AnalysisService) Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	result, err := s.count(ctx, req)
	if err != nil {
		return nil, err
	}
	if !result.Renderable() || !req.IncludeImages {
		if result.Renderable() {
			metrics.AnalysisOutcomes.WithLabelValues(metrics.OutcomeCounted).Inc()
		}
		return result, nil
	}

	images, err := s.renderAll(ctx, result)
	if err != nil {
		return nil, err
	}
	result.Images = images
	metrics.AnalysisOutcomes.WithLabelValues(metrics.OutcomeRendered).Inc()

	return result, nil
}

// RenderVisualization runs the pipeline and renders a single visualization.
// A result that cannot be rendered is reported as a processing error.
func (s *AnalysisService) RenderVisualization(ctx context.Context, kind domain.VisualizationKind, req *domain.AnalysisRequest) ([]byte, *domain.AnalysisResult, error) {
	result, err := s.count(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if !result.Renderable() {
		msg := result.Warning
		if result.Error != "" {
			msg = result.Error
		}
		return nil, result, apperrors.NewProcessingError(msg, domain.ErrNothingToRender)
	}

	img, err := s.render(ctx, kind, result)
	if err != nil {
		return nil, result, err
	}
	metrics.AnalysisOutcomes.WithLabelValues(metrics.OutcomeRendered).Inc()
	return img, result, nil
}

// count runs extraction and counting and applies the warning rules.
func (s *AnalysisService) count(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("empty request")
	}
	if err := req.Params.Validate(); err != nil {
		return nil, apperrors.NewValidationError("invalid render parameters", err.Error())
	}

	result := &domain.AnalysisResult{
		Params:   req.Params,
		TopWords: []domain.WordCount{},
	}

	text := req.Text
	if req.Document != nil {
		result.Filename = req.Document.Filename
		extracted, err := s.extract(ctx, req.Document)
		result.Extraction = extracted
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			result.Error = userMessage("PDF error", err)
			text = ""
		} else {
			text = extracted.Text
		}
	}
	result.Text = text

	if (&domain.ExtractedText{Text: text}).IsBlank() {
		result.Warning = domain.WarningNoText
		if result.Error != "" {
			metrics.AnalysisOutcomes.WithLabelValues(metrics.OutcomeExtractionError).Inc()
		} else {
			metrics.AnalysisOutcomes.WithLabelValues(metrics.OutcomeNoText).Inc()
		}
		s.logger.Warn("No text to analyze", "filename", result.Filename)
		return result, nil
	}

	freq, stats := s.counter.Count(text, req.ExtraStopwords)
	result.Frequencies = freq
	result.Stats = stats
	result.TopWords = freq.MostCommon(domain.ChartTopN)

	if freq.Len() == 0 {
		result.Warning = domain.WarningNoWords
		metrics.AnalysisOutcomes.WithLabelValues(metrics.OutcomeNoWords).Inc()
		s.logger.Warn("Every token was a stopword", "filename", result.Filename, "tokens", stats.TotalTokens)
		return result, nil
	}

	s.logger.Info("Text analyzed",
		"filename", result.Filename,
		"tokens", stats.TotalTokens,
		"filtered", stats.FilteredTokens,
		"unique_words", freq.Len(),
	)
	return result, nil
}

func (s *AnalysisService) extract(ctx context.Context, doc *domain.UploadedFile) (*domain.ExtractedText, error) {
	engine := string(s.extractor.Engine())
	start := time.Now()
	extracted, err := s.extractor.Extract(ctx, doc.Data)
	metrics.ExtractionDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ExtractionFailures.WithLabelValues(engine).Inc()
		s.logger.Error("Failed to extract PDF text", err, "filename", doc.Filename, "size", doc.Size(), "engine", engine)
		return extracted, err
	}
	if n := len(extracted.FailedPages); n > 0 {
		metrics.FailedPages.WithLabelValues(engine).Add(float64(n))
	}

	s.logger.Debug("PDF text extracted",
		"filename", doc.Filename,
		"pages", extracted.PageCount,
		"failed_pages", len(extracted.FailedPages),
		"chars", len(extracted.Text),
		"engine", engine,
	)
	return extracted, nil
}

// renderAll draws the three visualizations concurrently. The frequency map
// is read-only, so sharing it is safe.
func (s *AnalysisService) renderAll(ctx context.Context, result *domain.AnalysisResult) (*domain.Visualizations, error) {
	images := &domain.Visualizations{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		images.Cloud, err = s.render(gctx, domain.VisualizationCloud, result)
		return err
	})
	g.Go(func() (err error) {
		images.Bar, err = s.render(gctx, domain.VisualizationBar, result)
		return err
	})
	g.Go(func() (err error) {
		images.Pie, err = s.render(gctx, domain.VisualizationPie, result)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func (s *AnalysisService) render(ctx context.Context, kind domain.VisualizationKind, result *domain.AnalysisResult) ([]byte, error) {
	start := time.Now()

	var img []byte
	var err error
	switch kind {
	case domain.VisualizationCloud:
		img, err = s.cloud.RenderCloud(ctx, result.Frequencies, s.cloudParams(result.Params))
	case domain.VisualizationBar:
		img, err = s.charts.RenderBar(ctx, result.TopWords)
	case domain.VisualizationPie:
		img, err = s.charts.RenderPie(ctx, result.TopWords)
	default:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("unknown visualization %q", kind))
	}

	metrics.RenderDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RenderErrors.WithLabelValues(string(kind)).Inc()
		s.logger.Error("Failed to render visualization", err, "kind", kind)
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to render %s", kind), err)
	}
	return img, nil
}

func (s *AnalysisService) cloudParams(params domain.RenderParameters) domain.RenderParameters {
	if !s.applyMaxWords {
		params.MaxWords = domain.LayoutDefaultMaxWords
	}
	return params
}

func userMessage(prefix string, err error) string {
	if appErr, ok := apperrors.As(err); ok {
		if appErr.Cause != nil {
			return fmt.Sprintf("%s: %v", prefix, appErr.Cause)
		}
		return fmt.Sprintf("%s: %s", prefix, appErr.Message)
	}
	return fmt.Sprintf("%s: %v", prefix, err)
}
