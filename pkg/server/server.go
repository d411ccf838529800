// Package server exposes a navigator over HTTP as JSON.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang/glog"

	"github.com/1F47E/campus-nav/pkg/estimate"
	"github.com/1F47E/campus-nav/pkg/models"
	"github.com/1F47E/campus-nav/pkg/nav"
	"github.com/1F47E/campus-nav/pkg/rtree"
)

// Server serves one shared navigator. Requests are serialized so the
// selection keeps a single writer.
type Server struct {
	mu     sync.Mutex
	nav    *nav.Navigator
	index  *rtree.HotspotIndex
	router *chi.Mux
}

// HotspotView is the JSON form of one hotspot
type HotspotView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Hotspot     models.Rect  `json:"hotspot"`
	Center      models.Point `json:"center"`
	Class       nav.Class    `json:"class"`
}

// StateView is the JSON form of the whole navigator state
type StateView struct {
	Phase       string             `json:"phase"`
	Start       string             `json:"start,omitempty"`
	Destination string             `json:"destination,omitempty"`
	Hotspots    []HotspotView      `json:"hotspots"`
	Route       *nav.Route         `json:"route,omitempty"`
	Estimate    *estimate.Estimate `json:"estimate,omitempty"`
}

// New creates the server and its routes
func New(n *nav.Navigator) *Server {
	index := rtree.NewHotspotIndex()
	index.Index(n.Catalog().Selectable())

	s := &Server{nav: n, index: index}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/locations", s.handleLocations)
	r.Get("/state", s.handleState)
	r.Get("/route", s.handleRoute)
	r.Post("/click/{id}", s.handleClick)
	r.Post("/click-at", s.handleClickAt)
	r.Post("/reset", s.handleReset)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// state must be called with s.mu held
func (s *Server) state() StateView {
	sel := s.nav.Selection()
	view := StateView{
		Phase:    sel.Phase().String(),
		Hotspots: []HotspotView{},
		Route:    s.nav.Route(),
		Estimate: s.nav.Estimate(),
	}
	if loc := sel.Start(); loc != nil {
		view.Start = loc.ID
	}
	if loc := sel.Destination(); loc != nil {
		view.Destination = loc.ID
	}
	for _, h := range s.nav.Hotspots() {
		view.Hotspots = append(view.Hotspots, HotspotView{
			ID:          h.Location.ID,
			Name:        h.Location.Name,
			Description: h.Location.Description,
			Hotspot:     h.Location.Hotspot,
			Center:      *h.Location.Center,
			Class:       h.Class,
		})
	}
	return view
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	view := s.state()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, view.Hotspots)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	view := s.state()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	route, est := s.nav.Route(), s.nav.Estimate()
	s.mu.Unlock()

	if route == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Route    *nav.Route         `json:"route"`
		Estimate *estimate.Estimate `json:"estimate"`
	}{route, est})
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	s.click(w, chi.URLParam(r, "id"))
}

func (s *Server) handleClickAt(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, "x and y must be numbers")
		return
	}

	loc := s.index.HitTest(models.Point{X: x, Y: y})
	if loc == nil {
		// a click on the bare map changes nothing
		s.mu.Lock()
		view := s.state()
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, view)
		return
	}
	s.click(w, loc.ID)
}

func (s *Server) click(w http.ResponseWriter, id string) {
	s.mu.Lock()
	err := s.nav.Click(id)
	view := s.state()
	s.mu.Unlock()

	switch {
	case errors.Is(err, nav.ErrUnknownLocation):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrMissingCenter):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, view)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.nav.Reset()
	view := s.state()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, view)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Warningf("server: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
