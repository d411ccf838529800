package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrMissingCenter is reported for a location whose record carries no usable
// center coordinates. Such a location can not be selected or routed to.
var ErrMissingCenter = errors.New("missing center coordinates")

// Point is a normalized map coordinate: X and Y are percentages of the
// map image width and height (conceptually 0-100).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Valid reports whether both coordinates are finite numbers
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) &&
		!math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Rect is the clickable hotspot region of a location, laid out in the same
// space as Point.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether the rectangle has no clickable area
func (r Rect) Empty() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// Area returns Width*Height, or 0 for an empty rectangle
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Contains reports whether p lies inside or on the border of r
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.Left && p.X <= r.Left+r.Width &&
		p.Y >= r.Top && p.Y <= r.Top+r.Height
}

// Location is a labeled place on the campus map. Locations are immutable
// once loaded.
type Location struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Hotspot     Rect   `json:"hotspot"`
	// Center is nil when the source record had no center coordinates.
	Center *Point `json:"center,omitempty"`
}

// Validate checks the fields needed for selection and route computation
func (l *Location) Validate() error {
	if l.ID == "" {
		return errors.New("location has empty id")
	}
	if l.Center == nil || !l.Center.Valid() {
		return fmt.Errorf("location %s: %w", l.ID, ErrMissingCenter)
	}
	return nil
}

// Label returns the display name, falling back to the id
func (l *Location) Label() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}
