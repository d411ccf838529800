// Package catalog loads the campus location records and exposes them as an
// immutable, insertion-ordered catalog.
package catalog

import (
	"github.com/golang/glog"

	"github.com/1F47E/campus-nav/pkg/models"
)

// Catalog is a read-only, insertion-ordered set of locations with unique ids
type Catalog struct {
	locations  []*models.Location
	byID       map[string]*models.Location
	selectable []*models.Location
}

// Empty returns a catalog without locations
func Empty() *Catalog {
	return New(nil)
}

// New builds a catalog from locs. Records with an empty id are dropped and
// for duplicate ids the first record wins. Records that fail validation are
// kept but are not selectable.
func New(locs []models.Location) *Catalog {
	c := &Catalog{
		locations: make([]*models.Location, 0, len(locs)),
		byID:      make(map[string]*models.Location, len(locs)),
	}
	for i := range locs {
		loc := locs[i]
		if loc.ID == "" {
			glog.V(1).Infof("catalog: dropping record %d with empty id", i)
			continue
		}
		if _, dup := c.byID[loc.ID]; dup {
			glog.V(1).Infof("catalog: dropping duplicate id %q", loc.ID)
			continue
		}
		if loc.Center != nil {
			center := *loc.Center
			loc.Center = &center
		}
		p := &loc
		c.locations = append(c.locations, p)
		c.byID[loc.ID] = p
		if err := p.Validate(); err != nil {
			glog.V(1).Infof("catalog: %v; location is not selectable", err)
			continue
		}
		c.selectable = append(c.selectable, p)
	}
	return c
}

// Len returns the number of locations, selectable or not
func (c *Catalog) Len() int {
	return len(c.locations)
}

// All returns every location in insertion order. Callers must not modify
// the returned locations.
func (c *Catalog) All() []*models.Location {
	return c.locations
}

// Selectable returns the locations that have all fields needed for
// selection and routing, in insertion order.
func (c *Catalog) Selectable() []*models.Location {
	return c.selectable
}

// Get returns the location with id, or nil
func (c *Catalog) Get(id string) *models.Location {
	return c.byID[id]
}

// Records returns copies of all locations, suitable for persisting
func (c *Catalog) Records() []models.Location {
	out := make([]models.Location, len(c.locations))
	for i, loc := range c.locations {
		out[i] = *loc
	}
	return out
}
