package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1F47E/campus-nav/pkg/catalog"
	"github.com/1F47E/campus-nav/pkg/config"
	"github.com/1F47E/campus-nav/pkg/estimate"
	"github.com/1F47E/campus-nav/pkg/models"
	"github.com/1F47E/campus-nav/pkg/nav"
)

func testModel(locs []models.Location) model {
	n := nav.New(catalog.New(locs), estimate.NewEstimator(estimate.DefaultUnitsPerMinute))
	return initialModel(n, config.Map{Width: 30, Height: 10})
}

func press(t *testing.T, m model, msgs ...tea.KeyMsg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(model)
		require.True(t, ok)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyReset = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func campusLocations() []models.Location {
	return []models.Location{
		{ID: "1", Name: "Library", Center: &models.Point{X: 10, Y: 10}},
		{ID: "2", Name: "Gym", Center: &models.Point{X: 40, Y: 30}},
	}
}

func TestModelSelectRoute(t *testing.T) {
	m := testModel(campusLocations())

	m = press(t, m, keyEnter)
	assert.Equal(t, nav.StartOnly, m.nav.Phase())
	assert.Equal(t, nav.IsStart, m.hotspots[0].Class)

	m = press(t, m, keyDown, keyEnter)
	assert.Equal(t, nav.Complete, m.nav.Phase())
	assert.Equal(t, nav.IsDestination, m.hotspots[1].Class)

	view := m.View()
	assert.Contains(t, view, "36.06")
	assert.Contains(t, view, "19 min")

	m = press(t, m, keyReset)
	assert.Equal(t, nav.Empty, m.nav.Phase())
	assert.Equal(t, nav.Neutral, m.hotspots[0].Class)
}

func TestModelCursorBounds(t *testing.T) {
	m := testModel(campusLocations())

	m = press(t, m, keyUp)
	assert.Equal(t, 0, m.cursor)

	m = press(t, m, keyDown, keyDown, keyDown)
	assert.Equal(t, 1, m.cursor)
}

func TestModelQuit(t *testing.T) {
	m := testModel(campusLocations())
	_, cmd := m.Update(keyQuit)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelEmptyCatalog(t *testing.T) {
	m := testModel(nil)

	m = press(t, m, keyEnter, keyDown, keyEnter)
	assert.Equal(t, nav.Empty, m.nav.Phase())
	assert.Contains(t, m.View(), "No locations loaded")
}
