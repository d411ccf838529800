package nav

import (
	"testing"

	"github.com/1F47E/campus-nav/pkg/models"
	"github.com/stretchr/testify/assert"
)

var (
	library = &models.Location{ID: "1", Name: "Library", Center: &models.Point{X: 10, Y: 10}}
	gym     = &models.Location{ID: "2", Name: "Gym", Center: &models.Point{X: 40, Y: 30}}
	quad    = &models.Location{ID: "3", Name: "Quad", Center: &models.Point{X: 70, Y: 50}}
)

// states returns one selection per phase
func states() map[Phase]Selection {
	return map[Phase]Selection{
		Empty:     {},
		StartOnly: Selection{}.Click(library),
		Complete:  Selection{}.Click(library).Click(gym),
	}
}

func TestSelectionTransitions(t *testing.T) {
	s := Selection{}
	assert.Equal(t, Empty, s.Phase())
	assert.Nil(t, s.Start())
	assert.Nil(t, s.Destination())

	s = s.Click(library)
	assert.Equal(t, StartOnly, s.Phase())
	assert.Equal(t, "1", s.Start().ID)
	assert.Nil(t, s.Destination())

	s = s.Click(gym)
	assert.Equal(t, Complete, s.Phase())
	assert.Equal(t, "1", s.Start().ID)
	assert.Equal(t, "2", s.Destination().ID)

	s = s.Click(quad)
	assert.Equal(t, StartOnly, s.Phase())
	assert.Equal(t, "3", s.Start().ID, "a click after completion starts over")
	assert.Nil(t, s.Destination())
}

func TestSelectionTotality(t *testing.T) {
	next := map[Phase]Phase{
		Empty:     StartOnly,
		StartOnly: Complete,
		Complete:  StartOnly,
	}
	for phase, s := range states() {
		for _, loc := range []*models.Location{library, gym, quad} {
			t.Run(phase.String()+"/"+loc.Name, func(t *testing.T) {
				got := s.Click(loc)
				assert.Equal(t, next[phase], got.Phase())
				if got.Destination() != nil {
					assert.NotNil(t, got.Start(), "destination without start")
				}
			})
		}
	}
}

func TestSelectionSameLocationTwice(t *testing.T) {
	s := Selection{}.Click(library).Click(library)
	assert.Equal(t, Complete, s.Phase())
	assert.Equal(t, "1", s.Start().ID)
	assert.Equal(t, "1", s.Destination().ID)
}

func TestSelectionNilClick(t *testing.T) {
	for phase, s := range states() {
		assert.True(t, s.Click(nil).Equal(s), "nil click changed %s", phase)
	}
}

func TestSelectionReset(t *testing.T) {
	for phase, s := range states() {
		once := s.Reset()
		assert.Equal(t, Empty, once.Phase(), "reset from %s", phase)
		assert.True(t, once.Reset().Equal(once), "reset is idempotent")
	}
}

func TestSelectionIsValue(t *testing.T) {
	start := Selection{}.Click(library)
	_ = start.Click(gym)
	assert.Equal(t, StartOnly, start.Phase(), "click must not mutate the receiver")
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "start-only", StartOnly.String())
	assert.Equal(t, "complete", Complete.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
