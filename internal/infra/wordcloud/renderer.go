// Package wordcloud lays out and draws word clouds as PNG images.
package wordcloud

import (
	"bytes"
	"context"
	"image/color"
	"math"

	"wordlens/internal/domain"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultMinFontSize = 4
	// relativeScaling weighs the count ratio against the previous word's
	// size, so sizes follow frequency without collapsing the long tail.
	relativeScaling = 0.5
	shrinkFactor    = 0.9
	padding         = 2
	// maxMisses consecutive words that fit nowhere mean the canvas is full.
	maxMisses = 3
)

var (
	// ErrNoWords is returned when the frequency map has nothing to draw.
	ErrNoWords = errors.New("wordcloud: no words to draw")
	// ErrNoSpace is returned when not a single word fits on the canvas.
	ErrNoSpace = errors.New("wordcloud: could not find space to draw any word")
)

// palette runs from dark to light.
var palette = []color.RGBA{
	{R: 68, G: 1, B: 84, A: 255},
	{R: 72, G: 40, B: 120, A: 255},
	{R: 62, G: 74, B: 137, A: 255},
	{R: 49, G: 104, B: 142, A: 255},
	{R: 38, G: 130, B: 142, A: 255},
	{R: 31, G: 158, B: 137, A: 255},
	{R: 53, G: 183, B: 121, A: 255},
	{R: 110, G: 206, B: 88, A: 255},
	{R: 181, G: 222, B: 43, A: 255},
	{R: 253, G: 231, B: 37, A: 255},
}

// Renderer draws clouds with the embedded Go Regular font. It is safe for
// concurrent use; every render builds its own font faces.
type Renderer struct {
	font        *truetype.Font
	minFontSize float64
	cell        int
}

// NewRenderer parses the embedded font
func NewRenderer() (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse embedded font")
	}
	return &Renderer{
		font:        f,
		minFontSize: defaultMinFontSize,
		cell:        occupancyCell,
	}, nil
}

// placement is a word that made it onto the canvas.
type placement struct {
	word     string
	size     int
	x, y     int
	baseline int
	color    color.RGBA
}

// RenderCloud draws the most frequent words of freq, largest first, on a
// params.Width x params.Height canvas. At most params.MaxWords words are
// considered; a non-positive value falls back to the layout default.
func (r *Renderer) RenderCloud(ctx context.Context, freq *domain.FrequencyMap, params domain.RenderParameters) ([]byte, error) {
	maxWords := params.MaxWords
	if maxWords <= 0 {
		maxWords = domain.LayoutDefaultMaxWords
	}
	words := freq.MostCommon(maxWords)
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	if params.Width <= 0 || params.Height <= 0 {
		return nil, errors.Errorf("wordcloud: invalid canvas %dx%d", params.Width, params.Height)
	}

	faces := newFaceCache(r.font)
	defer faces.Close()

	placed, err := r.layout(ctx, words, faces, params)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(params.Width, params.Height)
	dc.SetColor(params.Background.RGBA())
	dc.Clear()
	for _, p := range placed {
		dc.SetFontFace(faces.Get(p.size))
		dc.SetColor(p.color)
		dc.DrawString(p.word, float64(p.x+padding/2), float64(p.baseline))
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(err, "encode word cloud")
	}
	return buf.Bytes(), nil
}

func (r *Renderer) layout(ctx context.Context, words []domain.WordCount, faces *faceCache, params domain.RenderParameters) ([]placement, error) {
	grid := newOccupancyGrid(params.Width, params.Height, r.cell)
	colors := paletteFor(params.Background)

	size := float64(params.Height) * 0.5
	lastCount := words[0].Count
	placed := make([]placement, 0, len(words))
	misses := 0

	for i, wc := range words {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "word cloud layout")
		}
		if i > 0 {
			ratio := float64(wc.Count) / float64(lastCount)
			size = math.Round((relativeScaling*ratio + (1 - relativeScaling)) * size)
		}
		lastCount = wc.Count

		start := size
		ok := false
		for size >= r.minFontSize {
			face := faces.Get(int(size))
			w, h, ascent := measure(face, wc.Word)
			if x, y, found := grid.Find(w+padding, h+padding); found {
				grid.Occupy(x, y, w+padding, h+padding)
				placed = append(placed, placement{
					word:     wc.Word,
					size:     int(size),
					x:        x,
					y:        y,
					baseline: y + padding/2 + ascent,
					color:    colors[i%len(colors)],
				})
				ok = true
				break
			}
			size = math.Floor(size * shrinkFactor)
		}
		if !ok {
			// Too wide even at the minimum size; a shorter word may still fit.
			misses++
			if misses >= maxMisses {
				break
			}
			size = start
			continue
		}
		misses = 0
	}
	if len(placed) == 0 {
		return nil, ErrNoSpace
	}
	return placed, nil
}

// paletteFor keeps the light half of the palette on dark backgrounds and
// the dark half otherwise.
func paletteFor(bg domain.BackgroundColor) []color.RGBA {
	half := len(palette) / 2
	if bg.IsDark() {
		return palette[half:]
	}
	return palette[:half+1]
}

func measure(face font.Face, word string) (width, height, ascent int) {
	m := face.Metrics()
	ascent = m.Ascent.Ceil()
	return font.MeasureString(face, word).Ceil(), ascent + m.Descent.Ceil(), ascent
}

// faceCache builds one face per integer size. Faces keep glyph caches and
// are not shared between renders.
type faceCache struct {
	font  *truetype.Font
	faces map[int]font.Face
}

func newFaceCache(f *truetype.Font) *faceCache {
	return &faceCache{font: f, faces: make(map[int]font.Face)}
}

func (c *faceCache) Get(size int) font.Face {
	if face, ok := c.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(c.font, &truetype.Options{Size: float64(size), Hinting: font.HintingFull})
	c.faces[size] = face
	return face
}

func (c *faceCache) Close() {
	for _, face := range c.faces {
		_ = face.Close()
	}
}
