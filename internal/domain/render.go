package domain

import (
	"fmt"
	"image/color"
	"strings"
)

// BackgroundColor is one of the supported word cloud backgrounds.
type BackgroundColor string

const (
	BackgroundWhite     BackgroundColor = "white"
	BackgroundBlack     BackgroundColor = "black"
	BackgroundLightBlue BackgroundColor = "lightblue"
	BackgroundLightGrey BackgroundColor = "lightgrey"
)

// BackgroundColors lists the selectable backgrounds in display order.
var BackgroundColors = []BackgroundColor{
	BackgroundWhite,
	BackgroundBlack,
	BackgroundLightBlue,
	BackgroundLightGrey,
}

var backgroundRGBA = map[BackgroundColor]color.RGBA{
	BackgroundWhite:     {R: 255, G: 255, B: 255, A: 255},
	BackgroundBlack:     {R: 0, G: 0, B: 0, A: 255},
	BackgroundLightBlue: {R: 173, G: 216, B: 230, A: 255},
	BackgroundLightGrey: {R: 211, G: 211, B: 211, A: 255},
}

// ParseBackgroundColor validates a color name. Matching is case-insensitive
// and accepts the "lightgray" spelling.
func ParseBackgroundColor(s string) (BackgroundColor, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "lightgray" {
		name = string(BackgroundLightGrey)
	}
	bg := BackgroundColor(name)
	if _, ok := backgroundRGBA[bg]; !ok {
		return "", &ValidationError{Field: "background", Message: fmt.Sprintf("unsupported background color %q", s)}
	}
	return bg, nil
}

// RGBA returns the concrete color; unknown values fall back to white.
func (b BackgroundColor) RGBA() color.RGBA {
	if c, ok := backgroundRGBA[b]; ok {
		return c
	}
	return backgroundRGBA[BackgroundWhite]
}

// IsDark reports whether light text is needed for contrast
func (b BackgroundColor) IsDark() bool {
	c := b.RGBA()
	// ITU-R BT.601 luma
	luma := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return luma < 128
}

// Render parameter bounds, matching the UI controls.
const (
	MinMaxWords     = 50
	MaxMaxWords     = 500
	DefaultMaxWords = 150

	MinWidth     = 300
	MaxWidth     = 1000
	DefaultWidth = 800

	MinHeight     = 300
	MaxHeight     = 800
	DefaultHeight = 400

	// LayoutDefaultMaxWords is the cap the cloud layout applies on its own
	// when the requested word limit is not wired through.
	LayoutDefaultMaxWords = 200

	// ChartTopN is the number of words shown in bar and pie charts.
	ChartTopN = 10
)

// RenderParameters configures a single word cloud render.
type RenderParameters struct {
	MaxWords   int             `json:"max_words" yaml:"max_words"`
	Width      int             `json:"width" yaml:"width"`
	Height     int             `json:"height" yaml:"height"`
	Background BackgroundColor `json:"background" yaml:"background"`
}

// DefaultRenderParameters returns the initial values of the UI controls.
func DefaultRenderParameters() RenderParameters {
	return RenderParameters{
		MaxWords:   DefaultMaxWords,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: BackgroundWhite,
	}
}

// Validate checks every field against its allowed range.
func (p RenderParameters) Validate() error {
	if p.MaxWords < MinMaxWords || p.MaxWords > MaxMaxWords {
		return &ValidationError{Field: "max_words", Message: fmt.Sprintf("must be between %d and %d", MinMaxWords, MaxMaxWords)}
	}
	if p.Width < MinWidth || p.Width > MaxWidth {
		return &ValidationError{Field: "width", Message: fmt.Sprintf("must be between %d and %d", MinWidth, MaxWidth)}
	}
	if p.Height < MinHeight || p.Height > MaxHeight {
		return &ValidationError{Field: "height", Message: fmt.Sprintf("must be between %d and %d", MinHeight, MaxHeight)}
	}
	if _, err := ParseBackgroundColor(string(p.Background)); err != nil {
		return err
	}
	return nil
}

// VisualizationKind names one of the rendered outputs.
type VisualizationKind string

const (
	VisualizationCloud VisualizationKind = "cloud"
	VisualizationBar   VisualizationKind = "bar"
	VisualizationPie   VisualizationKind = "pie"
)

// ParseVisualizationKind validates a kind taken from a URL.
func ParseVisualizationKind(s string) (VisualizationKind, error) {
	switch k := VisualizationKind(strings.ToLower(s)); k {
	case VisualizationCloud, VisualizationBar, VisualizationPie:
		return k, nil
	default:
		return "", ErrUnknownVisualization
	}
}

// Visualizations holds the PNG encoded outputs of one analysis.
type Visualizations struct {
	Cloud []byte `json:"cloud,omitempty"`
	Bar   []byte `json:"bar,omitempty"`
	Pie   []byte `json:"pie,omitempty"`
}

// Get returns the image for kind
func (v *Visualizations) Get(kind VisualizationKind) []byte {
	if v == nil {
		return nil
	}
	switch kind {
	case VisualizationCloud:
		return v.Cloud
	case VisualizationBar:
		return v.Bar
	case VisualizationPie:
		return v.Pie
	}
	return nil
}
