package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/1F47E/campus-nav/pkg/catalog"
	"github.com/1F47E/campus-nav/pkg/estimate"
	"github.com/1F47E/campus-nav/pkg/models"
	"github.com/1F47E/campus-nav/pkg/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	c := catalog.New([]models.Location{
		{ID: "1", Name: "Library",
			Hotspot: models.Rect{Top: 5, Left: 5, Width: 10, Height: 10},
			Center:  &models.Point{X: 10, Y: 10}},
		{ID: "2", Name: "Gym",
			Hotspot: models.Rect{Top: 25, Left: 35, Width: 10, Height: 10},
			Center:  &models.Point{X: 40, Y: 30}},
		{ID: "3", Name: "Annex"},
	})
	return New(nav.New(c, estimate.NewEstimator(estimate.DefaultUnitsPerMinute)))
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) StateView {
	t.Helper()
	var view StateView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func TestLocations(t *testing.T) {
	s := newTestServer()
	rec := do(t, s, http.MethodGet, "/locations")
	require.Equal(t, http.StatusOK, rec.Code)

	var hotspots []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hotspots))
	require.Len(t, hotspots, 2)
	assert.Equal(t, "neutral", hotspots[0]["class"])
}

func TestClickFlow(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodGet, "/route")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodPost, "/click/1")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeState(t, rec)
	assert.Equal(t, "start-only", view.Phase)
	assert.Equal(t, "1", view.Start)
	assert.Nil(t, view.Route)

	rec = do(t, s, http.MethodPost, "/click/2")
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeState(t, rec)
	assert.Equal(t, "complete", view.Phase)
	require.NotNil(t, view.Estimate)
	assert.Equal(t, "19 min", view.Estimate.WalkingTime)
	require.NotNil(t, view.Route)
	assert.Equal(t, nav.Outlined, view.Route.Destination.Fill)

	rec = do(t, s, http.MethodGet, "/route")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"walking_time":"19 min"`)

	rec = do(t, s, http.MethodPost, "/reset")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "empty", decodeState(t, rec).Phase)
}

func TestClickErrorsKeepState(t *testing.T) {
	s := newTestServer()
	do(t, s, http.MethodPost, "/click/1")

	rec := do(t, s, http.MethodPost, "/click/404")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/click/3")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodGet, "/state")
	view := decodeState(t, rec)
	assert.Equal(t, "start-only", view.Phase)
	assert.Equal(t, "1", view.Start)
}

func TestClickAt(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/click-at?x=40&y=30")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", decodeState(t, rec).Start)

	rec = do(t, s, http.MethodPost, "/click-at?x=90&y=90")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeState(t, rec)
	assert.Equal(t, "start-only", view.Phase, "a miss changes nothing")

	rec = do(t, s, http.MethodPost, "/click-at?x=abc&y=1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmptyCatalog(t *testing.T) {
	s := New(nav.New(catalog.Empty(), estimate.Estimator{}))

	rec := do(t, s, http.MethodGet, "/locations")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/click/1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
