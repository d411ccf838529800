package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := Rect{Top: 10, Left: 20, Width: 5, Height: 5}

	testCases := []struct {
		name     string
		point    Point
		expected bool
	}{
		{"inside", Point{X: 22, Y: 12}, true},
		{"top left corner", Point{X: 20, Y: 10}, true},
		{"bottom right corner", Point{X: 25, Y: 15}, true},
		{"left of", Point{X: 19.9, Y: 12}, false},
		{"below", Point{X: 22, Y: 15.1}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, r.Contains(tc.point))
		})
	}

	assert.False(t, Rect{Width: 0, Height: 5}.Contains(Point{}))
	assert.Equal(t, 25.0, r.Area())
	assert.Equal(t, 0.0, Rect{Width: -1, Height: 5}.Area())
	assert.True(t, Rect{Width: math.NaN(), Height: 5}.Empty())
}

func TestLocationValidate(t *testing.T) {
	ok := Location{ID: "1", Center: &Point{X: 1, Y: 2}}
	assert.NoError(t, ok.Validate())

	noCenter := Location{ID: "2"}
	assert.ErrorIs(t, noCenter.Validate(), ErrMissingCenter)

	nan := Location{ID: "3", Center: &Point{X: math.NaN(), Y: 2}}
	assert.ErrorIs(t, nan.Validate(), ErrMissingCenter)

	noID := Location{Center: &Point{}}
	assert.Error(t, noID.Validate())
}

func TestLocationLabel(t *testing.T) {
	assert.Equal(t, "Library", (&Location{ID: "1", Name: "Library"}).Label())
	assert.Equal(t, "1", (&Location{ID: "1"}).Label())
}
