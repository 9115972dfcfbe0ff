// Package chart renders the bar and pie charts for the top ranked words.
package chart

import (
	"bytes"
	"context"
	"fmt"

	"wordlens/internal/domain"

	"github.com/pkg/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	BarWidth  = 800
	BarHeight = 400
	PieSize   = 512

	barTitle = "Top Words"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("chart: no words to plot")

// Renderer draws charts with go-chart. It holds no state.
type Renderer struct{}

// NewRenderer creates a chart renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderBar draws one bar per word in the given order, counts on the y axis.
func (r *Renderer) RenderBar(ctx context.Context, top []domain.WordCount) ([]byte, error) {
	if len(top) == 0 {
		return nil, ErrNoData
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "bar chart")
	}

	maxCount := 0
	bars := make([]gochart.Value, 0, len(top))
	for _, wc := range top {
		bars = append(bars, gochart.Value{Label: wc.Word, Value: float64(wc.Count)})
		if wc.Count > maxCount {
			maxCount = wc.Count
		}
	}

	graph := gochart.BarChart{
		Title:  barTitle,
		Width:  BarWidth,
		Height: BarHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		BarWidth:   40,
		BarSpacing: 20,
		// An explicit range avoids go-chart's zero-range error when every
		// bar has the same height.
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "render bar chart")
	}
	return buf.Bytes(), nil
}

// RenderPie draws one slice per word in the given order. Labels carry the
// share of the plotted total with one decimal.
func (r *Renderer) RenderPie(ctx context.Context, top []domain.WordCount) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "pie chart")
	}
	labels := PieLabels(top)
	if len(labels) == 0 {
		return nil, ErrNoData
	}

	values := make([]gochart.Value, 0, len(top))
	for i, wc := range top {
		values = append(values, gochart.Value{Label: labels[i], Value: float64(wc.Count)})
	}

	graph := gochart.PieChart{
		Width:  PieSize,
		Height: PieSize,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "render pie chart")
	}
	return buf.Bytes(), nil
}

// PieLabels formats "word (12.3%)" for every entry. It returns nil when the
// counts do not add up to a positive total.
func PieLabels(top []domain.WordCount) []string {
	total := 0
	for _, wc := range top {
		total += wc.Count
	}
	if total <= 0 {
		return nil
	}

	labels := make([]string, len(top))
	for i, wc := range top {
		labels[i] = fmt.Sprintf("%s (%.1f%%)", wc.Word, 100*float64(wc.Count)/float64(total))
	}
	return labels
}
