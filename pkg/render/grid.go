// Package render draws the navigator state as text: a character map with
// hotspot and route markers, and the info panel.
package render

import (
	"math"
	"strings"

	"github.com/1F47E/campus-nav/pkg/models"
	"github.com/1F47E/campus-nav/pkg/nav"
)

// Glyphs used on the map
const (
	GlyphNeutral     = '·'
	GlyphStart       = '●'
	GlyphDestination = '○'
	GlyphSameSpot    = '◉'
	GlyphLine        = '•'
	GlyphEmpty       = ' '
)

// Grid is a character raster of the map, row 0 at the top of the image
type Grid struct {
	Width, Height int
	cells         [][]rune
}

// NewGrid creates a blank grid; sizes below 2 are raised to 2
func NewGrid(width, height int) *Grid {
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}
	cells := make([][]rune, height)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(string(GlyphEmpty), width))
	}
	return &Grid{Width: width, Height: height, cells: cells}
}

// Cell maps a percentage point to a grid column and row, clamped to the grid
func (g *Grid) Cell(p models.Point) (col, row int) {
	return scale(p.X, g.Width), scale(p.Y, g.Height)
}

func scale(v float64, n int) int {
	i := int(math.Round(v / 100 * float64(n-1)))
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// At returns the rune at col, row
func (g *Grid) At(col, row int) rune {
	return g.cells[row][col]
}

func (g *Grid) set(col, row int, r rune) {
	g.cells[row][col] = r
}

// String renders the grid rows joined by newlines
func (g *Grid) String() string {
	lines := make([]string, g.Height)
	for r, row := range g.cells {
		lines[r] = string(row)
	}
	return strings.Join(lines, "\n")
}

// Draw rasterizes the hotspot centers and, when present, the route with an
// arrow head pointing at the destination
func Draw(width, height int, hotspots []nav.Hotspot, route *nav.Route) *Grid {
	g := NewGrid(width, height)

	for _, h := range hotspots {
		if h.Location.Center == nil {
			continue
		}
		col, row := g.Cell(*h.Location.Center)
		g.set(col, row, GlyphNeutral)
	}

	if route == nil {
		return g
	}

	c0, r0 := g.Cell(route.Segment.From)
	c1, r1 := g.Cell(route.Segment.To)
	path := line(c0, r0, c1, r1)
	for i := 1; i < len(path)-1; i++ {
		g.set(path[i][0], path[i][1], GlyphLine)
	}
	if len(path) > 2 {
		prev := path[len(path)-2]
		g.set(prev[0], prev[1], arrow(c1-prev[0], r1-prev[1]))
	}

	if c0 == c1 && r0 == r1 {
		g.set(c0, r0, GlyphSameSpot)
		return g
	}
	g.set(c1, r1, GlyphDestination)
	g.set(c0, r0, GlyphStart)
	return g
}

// line returns the cells from (c0,r0) to (c1,r1) inclusive (Bresenham)
func line(c0, r0, c1, r1 int) [][2]int {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr

	var cells [][2]int
	for {
		cells = append(cells, [2]int{c0, r0})
		if c0 == c1 && r0 == r1 {
			return cells
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// arrow picks the glyph for a step of (dc, dr) in screen space, rows
// growing downwards
func arrow(dc, dr int) rune {
	switch {
	case dc > 0 && dr == 0:
		return '→'
	case dc < 0 && dr == 0:
		return '←'
	case dc == 0 && dr < 0:
		return '↑'
	case dc == 0 && dr > 0:
		return '↓'
	case dc > 0 && dr < 0:
		return '↗'
	case dc > 0 && dr > 0:
		return '↘'
	case dc < 0 && dr > 0:
		return '↙'
	case dc < 0 && dr < 0:
		return '↖'
	}
	return GlyphLine
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
