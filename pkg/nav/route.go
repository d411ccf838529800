package nav

import (
	"math"

	"github.com/1F47E/campus-nav/pkg/estimate"
	"github.com/1F47E/campus-nav/pkg/models"
)

// Role says which end of the route a marker sits on
type Role string

const (
	RoleOrigin Role = "origin"
	RoleTarget Role = "target"
)

// Fill is the marker drawing style
type Fill string

const (
	Filled   Fill = "filled"
	Outlined Fill = "outlined"
)

// Segment is the directed line from the start center to the destination
// center. The arrow is drawn at To.
type Segment struct {
	From models.Point `json:"from"`
	To   models.Point `json:"to"`
}

// Length returns the segment length in map units
func (s Segment) Length() float64 {
	return estimate.Distance(s.From, s.To)
}

// Heading returns the direction from From to To in radians, counter
// clockwise from the positive X axis, in [0, 2*pi). ok is false for a
// zero-length segment.
func (s Segment) Heading() (radians float64, ok bool) {
	dx, dy := s.To.X-s.From.X, s.To.Y-s.From.Y
	if dx == 0 && dy == 0 {
		return 0, false
	}
	a := math.Atan2(dy, dx)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a, true
}

// Marker is an endpoint marker of the route
type Marker struct {
	LocationID string       `json:"location_id"`
	Name       string       `json:"name"`
	Position   models.Point `json:"position"`
	Role       Role         `json:"role"`
	Fill       Fill         `json:"fill"`
}

// Route is everything needed to draw a completed selection
type Route struct {
	Segment     Segment `json:"segment"`
	Start       Marker  `json:"start"`
	Destination Marker  `json:"destination"`
}

// RouteFor derives the route for s. It returns nil unless s is Complete and
// both locations have a center.
func RouteFor(s Selection) *Route {
	if s.Phase() != Complete {
		return nil
	}
	from, to := s.start.Center, s.destination.Center
	if from == nil || to == nil || !from.Valid() || !to.Valid() {
		return nil
	}
	return &Route{
		Segment: Segment{From: *from, To: *to},
		Start: Marker{
			LocationID: s.start.ID,
			Name:       s.start.Label(),
			Position:   *from,
			Role:       RoleOrigin,
			Fill:       Filled,
		},
		Destination: Marker{
			LocationID: s.destination.ID,
			Name:       s.destination.Label(),
			Position:   *to,
			Role:       RoleTarget,
			Fill:       Outlined,
		},
	}
}
