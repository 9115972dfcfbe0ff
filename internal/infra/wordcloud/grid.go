package wordcloud

import "math"

const (
	occupancyCell = 4
	spiralStep    = 0.1
)

// occupancyGrid tracks used canvas area in square cells. A summed area
// table answers "is this rectangle free" in constant time.
type occupancyGrid struct {
	cell       int
	cols, rows int
	used       []bool
	integral   []int
}

func newOccupancyGrid(width, height, cell int) *occupancyGrid {
	cols := (width + cell - 1) / cell
	rows := (height + cell - 1) / cell
	g := &occupancyGrid{
		cell:     cell,
		cols:     cols,
		rows:     rows,
		used:     make([]bool, cols*rows),
		integral: make([]int, (cols+1)*(rows+1)),
	}
	return g
}

func (g *occupancyGrid) cellsFor(px int) int {
	return (px + g.cell - 1) / g.cell
}

// Find walks an Archimedean spiral out from the centre and returns the
// pixel position of the first free w x h box.
func (g *occupancyGrid) Find(w, h int) (x, y int, ok bool) {
	cw, ch := g.cellsFor(w), g.cellsFor(h)
	if cw > g.cols || ch > g.rows {
		return 0, 0, false
	}

	cx := float64(g.cols-cw) / 2
	cy := float64(g.rows-ch) / 2
	// Canvases are wider than tall; stretch the spiral to match.
	aspect := float64(g.cols) / float64(g.rows)
	maxRadius := math.Hypot(float64(g.cols), float64(g.rows))

	for t := 0.0; ; t += spiralStep {
		r := t / 2
		if r > maxRadius {
			return 0, 0, false
		}
		col := int(math.Round(cx + r*math.Cos(t)*aspect))
		row := int(math.Round(cy + r*math.Sin(t)))
		if col < 0 || row < 0 || col+cw > g.cols || row+ch > g.rows {
			continue
		}
		if g.sum(col, row, cw, ch) == 0 {
			return col * g.cell, row * g.cell, true
		}
	}
}

// Occupy marks the box at pixel position x, y as used.
func (g *occupancyGrid) Occupy(x, y, w, h int) {
	col, row := x/g.cell, y/g.cell
	cw, ch := g.cellsFor(w), g.cellsFor(h)
	for r := row; r < row+ch && r < g.rows; r++ {
		for c := col; c < col+cw && c < g.cols; c++ {
			g.used[r*g.cols+c] = true
		}
	}
	g.rebuild()
}

func (g *occupancyGrid) rebuild() {
	stride := g.cols + 1
	for r := 0; r < g.rows; r++ {
		rowSum := 0
		for c := 0; c < g.cols; c++ {
			if g.used[r*g.cols+c] {
				rowSum++
			}
			g.integral[(r+1)*stride+c+1] = g.integral[r*stride+c+1] + rowSum
		}
	}
}

// sum counts used cells in the cw x ch box at cell position col, row.
func (g *occupancyGrid) sum(col, row, cw, ch int) int {
	stride := g.cols + 1
	r0, c0, r1, c1 := row, col, row+ch, col+cw
	return g.integral[r1*stride+c1] - g.integral[r0*stride+c1] - g.integral[r1*stride+c0] + g.integral[r0*stride+c0]
}
