// Package nav holds the start/destination selection state machine and the
// values derived from it: hotspot classes, the route to draw and the walking
// estimate.
package nav

import "github.com/1F47E/campus-nav/pkg/models"

// Phase is the occupancy of the two selection slots
type Phase int

const (
	// Empty has neither start nor destination
	Empty Phase = iota
	// StartOnly has a start and no destination
	StartOnly
	// Complete has both start and destination
	Complete
)

func (p Phase) String() string {
	switch p {
	case Empty:
		return "empty"
	case StartOnly:
		return "start-only"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// Selection is an immutable (start, destination) pair. The zero value is
// the Empty selection. A destination is never set without a start.
type Selection struct {
	start       *models.Location
	destination *models.Location
}

// Phase reports which slots are occupied
func (s Selection) Phase() Phase {
	switch {
	case s.start == nil:
		return Empty
	case s.destination == nil:
		return StartOnly
	default:
		return Complete
	}
}

// Start returns the start location or nil
func (s Selection) Start() *models.Location { return s.start }

// Destination returns the destination location or nil
func (s Selection) Destination() *models.Location { return s.destination }

// Click applies a hotspot click and returns the next selection:
//
//	Empty     -> StartOnly (start = loc)
//	StartOnly -> Complete  (destination = loc, even if loc is the start)
//	Complete  -> StartOnly (start = loc, destination cleared)
//
// A nil loc leaves the selection unchanged.
func (s Selection) Click(loc *models.Location) Selection {
	if loc == nil {
		return s
	}
	switch s.Phase() {
	case StartOnly:
		return Selection{start: s.start, destination: loc}
	default:
		return Selection{start: loc}
	}
}

// Reset returns the Empty selection
func (s Selection) Reset() Selection {
	return Selection{}
}

// Equal compares selections by location id
func (s Selection) Equal(o Selection) bool {
	return sameID(s.start, o.start) && sameID(s.destination, o.destination)
}

func sameID(a, b *models.Location) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
