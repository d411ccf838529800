package nav

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/1F47E/campus-nav/pkg/catalog"
	"github.com/1F47E/campus-nav/pkg/estimate"
	"github.com/1F47E/campus-nav/pkg/models"
)

// ErrUnknownLocation is returned for a click on an id missing from the catalog
var ErrUnknownLocation = errors.New("unknown location")

// Hotspot is one selectable location with its current class
type Hotspot struct {
	Location *models.Location
	Class    Class
}

// Navigator binds a catalog to a selection. It is not safe for concurrent
// use; the selection has a single writer.
type Navigator struct {
	catalog   *catalog.Catalog
	estimator estimate.Estimator
	selection Selection
	focus     *models.Location
}

// New creates a navigator in the Empty phase. A nil catalog is treated as
// empty.
func New(c *catalog.Catalog, e estimate.Estimator) *Navigator {
	if c == nil {
		c = catalog.Empty()
	}
	return &Navigator{catalog: c, estimator: e}
}

// Catalog returns the catalog the navigator selects from
func (n *Navigator) Catalog() *catalog.Catalog {
	return n.catalog
}

// Click applies a click on the hotspot of location id. Unknown ids and
// locations that can not be routed leave the selection unchanged and are
// reported as an error.
func (n *Navigator) Click(id string) error {
	loc := n.catalog.Get(id)
	if loc == nil {
		glog.V(1).Infof("nav: ignoring click on unknown location %q", id)
		return fmt.Errorf("%w: %q", ErrUnknownLocation, id)
	}
	if err := loc.Validate(); err != nil {
		glog.V(1).Infof("nav: ignoring click: %v", err)
		return err
	}
	n.selection = n.selection.Click(loc)
	n.focus = loc
	return nil
}

// Reset clears both slots
func (n *Navigator) Reset() {
	n.selection = n.selection.Reset()
	n.focus = nil
}

// Selection returns the current selection
func (n *Navigator) Selection() Selection {
	return n.selection
}

// Phase returns the current selection phase
func (n *Navigator) Phase() Phase {
	return n.selection.Phase()
}

// Focus returns the most recently clicked location shown in the info panel,
// or nil after a reset.
func (n *Navigator) Focus() *models.Location {
	return n.focus
}

// Classify returns the class of location id under the current selection
func (n *Navigator) Classify(id string) Class {
	return Classify(id, n.selection)
}

// Hotspots returns every selectable location with its class, in catalog
// order. Locations without a usable center are left out.
func (n *Navigator) Hotspots() []Hotspot {
	locs := n.catalog.Selectable()
	out := make([]Hotspot, len(locs))
	for i, loc := range locs {
		out[i] = Hotspot{Location: loc, Class: Classify(loc.ID, n.selection)}
	}
	return out
}

// Route returns the route to draw, or nil unless both slots are set
func (n *Navigator) Route() *Route {
	return RouteFor(n.selection)
}

// Estimate returns the distance and walking time for the current route, or
// nil unless both slots are set.
func (n *Navigator) Estimate() *estimate.Estimate {
	r := n.Route()
	if r == nil {
		return nil
	}
	est := n.estimator.Between(r.Segment.From, r.Segment.To)
	return &est
}
