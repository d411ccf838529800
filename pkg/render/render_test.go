package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/1F47E/campus-nav/pkg/catalog"
	"github.com/1F47E/campus-nav/pkg/estimate"
	"github.com/1F47E/campus-nav/pkg/models"
	"github.com/1F47E/campus-nav/pkg/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNavigator() *nav.Navigator {
	c := catalog.New([]models.Location{
		{ID: "1", Name: "Library", Description: "Main library", Center: &models.Point{X: 0, Y: 0}},
		{ID: "2", Name: "Gym", Center: &models.Point{X: 100, Y: 0}},
		{ID: "3", Name: "Lab", Center: &models.Point{X: 100, Y: 100}},
	})
	return nav.New(c, estimate.NewEstimator(estimate.DefaultUnitsPerMinute))
}

func TestGridCell(t *testing.T) {
	g := NewGrid(11, 5)
	col, row := g.Cell(models.Point{X: 50, Y: 50})
	assert.Equal(t, 5, col)
	assert.Equal(t, 2, row)

	col, row = g.Cell(models.Point{X: -20, Y: 140})
	assert.Equal(t, 0, col)
	assert.Equal(t, 4, row)
}

func TestDrawHotspotsOnly(t *testing.T) {
	n := newNavigator()
	g := Draw(11, 5, n.Hotspots(), n.Route())

	assert.Equal(t, GlyphNeutral, g.At(0, 0))
	assert.Equal(t, GlyphNeutral, g.At(10, 0))
	assert.Equal(t, GlyphNeutral, g.At(10, 4))
	assert.Equal(t, GlyphEmpty, g.At(5, 2))
}

func TestDrawHorizontalRoute(t *testing.T) {
	n := newNavigator()
	require.NoError(t, n.Click("1"))
	require.NoError(t, n.Click("2"))

	g := Draw(11, 5, n.Hotspots(), n.Route())
	assert.Equal(t, GlyphStart, g.At(0, 0))
	assert.Equal(t, GlyphDestination, g.At(10, 0))
	assert.Equal(t, '→', g.At(9, 0), "arrow head next to the destination")
	for col := 1; col < 9; col++ {
		assert.Equal(t, GlyphLine, g.At(col, 0))
	}
	assert.Equal(t, GlyphNeutral, g.At(10, 4), "other hotspots stay neutral")
}

func TestDrawReverseDiagonal(t *testing.T) {
	n := newNavigator()
	require.NoError(t, n.Click("3"))
	require.NoError(t, n.Click("1"))

	g := Draw(5, 5, n.Hotspots(), n.Route())
	assert.Equal(t, GlyphStart, g.At(4, 4))
	assert.Equal(t, GlyphDestination, g.At(0, 0))
	assert.Equal(t, '↖', g.At(1, 1))
}

func TestDrawSameSpot(t *testing.T) {
	n := newNavigator()
	require.NoError(t, n.Click("2"))
	require.NoError(t, n.Click("2"))

	g := Draw(11, 5, n.Hotspots(), n.Route())
	assert.Equal(t, GlyphSameSpot, g.At(10, 0))
}

func TestPanelLines(t *testing.T) {
	n := newNavigator()
	lines := PanelLines(n)
	assert.Contains(t, lines, "Start:       (click a location)")
	assert.Contains(t, lines, "Destination: (select a start first)")

	require.NoError(t, n.Click("1"))
	require.NoError(t, n.Click("2"))
	lines = PanelLines(n)
	assert.Equal(t, "Gym", lines[0])
	assert.Contains(t, lines, "Start:       Library")
	assert.Contains(t, lines, "Destination: Gym")
	assert.Contains(t, lines, "Distance:    100.00 units")
	assert.Contains(t, lines, "Walking:     50 min")
}

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	n := newNavigator()
	require.NoError(t, n.Click("1"))
	p.Title("Campus Map & Navigation")
	p.Hotspots(n.Hotspots())
	p.Map(Draw(11, 5, n.Hotspots(), n.Route()))

	out := buf.String()
	assert.NotContains(t, out, "\033[", "no color codes outside a terminal")
	assert.Contains(t, out, "is-start")
	assert.Contains(t, out, "+-----------+")
	assert.Equal(t, 1, strings.Count(out, "Campus Map"))
}

func TestPrinterNoHotspots(t *testing.T) {
	var buf bytes.Buffer
	NewPlainPrinter(&buf).Hotspots(nil)
	assert.Contains(t, buf.String(), "No locations available")
}
