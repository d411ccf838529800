// Package rtree indexes hotspot rectangles and location centers in R-Trees
// so that map coordinates can be resolved to locations.
package rtree

import (
	"math"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/1F47E/campus-nav/pkg/estimate"
	"github.com/1F47E/campus-nav/pkg/models"
)

const (
	tolerance   = 1e-6
	minChildren = 2
	maxChildren = 8
	dimensions  = 2
)

// spatialLocation wraps a location to implement rtreego.Spatial
type spatialLocation struct {
	loc   *models.Location
	order int
	rect  rtreego.Rect
}

func (sl *spatialLocation) Bounds() rtreego.Rect {
	return sl.rect
}

// HotspotIndex is a thread-safe index over the hotspots and centers of a
// set of locations
type HotspotIndex struct {
	hotspots *rtreego.Rtree
	centers  *rtreego.Rtree
	mu       sync.RWMutex
	count    int
}

// NewHotspotIndex creates an empty index
func NewHotspotIndex() *HotspotIndex {
	return &HotspotIndex{
		hotspots: rtreego.NewTree(dimensions, minChildren, maxChildren),
		centers:  rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Index adds locs in order. Hotspots without area and invalid centers are
// skipped; Index returns how many locations were added to either tree.
func (h *HotspotIndex) Index(locs []*models.Location) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	added := 0
	for _, loc := range locs {
		if loc == nil {
			continue
		}
		order := h.count
		indexed := false

		r := loc.Hotspot
		if !r.Empty() && finite(r.Top, r.Left, r.Width, r.Height) {
			rect, err := rtreego.NewRect(rtreego.Point{r.Left, r.Top}, []float64{r.Width, r.Height})
			if err == nil {
				h.hotspots.Insert(&spatialLocation{loc: loc, order: order, rect: rect})
				indexed = true
			}
		}

		if c := loc.Center; c != nil && c.Valid() {
			rect := rtreego.Point{c.X, c.Y}.ToRect(tolerance)
			h.centers.Insert(&spatialLocation{loc: loc, order: order, rect: rect})
			indexed = true
		}

		if indexed {
			h.count++
			added++
		}
	}
	return added
}

// HitTest returns the location whose hotspot contains p. Where hotspots
// overlap the smallest one wins, then the one indexed first. It returns nil
// when p hits no hotspot.
func (h *HotspotIndex) HitTest(p models.Point) *models.Location {
	if !p.Valid() {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	results := h.hotspots.SearchIntersect(rtreego.Point{p.X, p.Y}.ToRect(tolerance))

	var best *spatialLocation
	for _, result := range results {
		item, ok := result.(*spatialLocation)
		if !ok || !item.loc.Hotspot.Contains(p) {
			continue
		}
		if best == nil || smaller(item, best) {
			best = item
		}
	}
	if best == nil {
		return nil
	}
	return best.loc
}

func smaller(a, b *spatialLocation) bool {
	aa, ba := a.loc.Hotspot.Area(), b.loc.Hotspot.Area()
	if aa != ba {
		return aa < ba
	}
	return a.order < b.order
}

// Nearest returns the location whose center is closest to p, or nil for an
// empty index
func (h *HotspotIndex) Nearest(p models.Point) *models.Location {
	if !p.Valid() {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := h.centers.NearestNeighbor(rtreego.Point{p.X, p.Y})
	item, ok := result.(*spatialLocation)
	if !ok || item == nil {
		return nil
	}
	return item.loc
}

// Within returns the locations whose centers lie within radius of p,
// closest first
func (h *HotspotIndex) Within(p models.Point, radius float64) []*models.Location {
	if !p.Valid() || !(radius > 0) || math.IsInf(radius, 0) {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	bounds, err := rtreego.NewRect(
		rtreego.Point{p.X - radius, p.Y - radius},
		[]float64{2 * radius, 2 * radius},
	)
	if err != nil {
		return nil
	}

	type hit struct {
		item *spatialLocation
		dist float64
	}
	var hits []hit
	for _, result := range h.centers.SearchIntersect(bounds) {
		item, ok := result.(*spatialLocation)
		if !ok {
			continue
		}
		d := estimate.Distance(p, *item.loc.Center)
		if d <= radius {
			hits = append(hits, hit{item, d})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].item.order < hits[j].item.order
	})

	locs := make([]*models.Location, len(hits))
	for i, hh := range hits {
		locs[i] = hh.item.loc
	}
	return locs
}

// Count returns the number of indexed locations
func (h *HotspotIndex) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Clear removes all locations from the index
func (h *HotspotIndex) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.hotspots = rtreego.NewTree(dimensions, minChildren, maxChildren)
	h.centers = rtreego.NewTree(dimensions, minChildren, maxChildren)
	h.count = 0
}
