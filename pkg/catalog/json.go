package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/1F47E/campus-nav/pkg/models"
)

// record is the transport shape of one location:
// {id, name, description, top, left, width, height, center_x, center_y}
type record struct {
	ID          flexID     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Top         dimension  `json:"top"`
	Left        dimension  `json:"left"`
	Width       dimension  `json:"width"`
	Height      dimension  `json:"height"`
	CenterX     *flexFloat `json:"center_x"`
	CenterY     *flexFloat `json:"center_y"`
}

func (r *record) location() models.Location {
	loc := models.Location{
		ID:          string(r.ID),
		Name:        r.Name,
		Description: r.Description,
		Hotspot: models.Rect{
			Top:    float64(r.Top),
			Left:   float64(r.Left),
			Width:  float64(r.Width),
			Height: float64(r.Height),
		},
	}
	if r.CenterX != nil && r.CenterY != nil {
		loc.Center = &models.Point{X: float64(*r.CenterX), Y: float64(*r.CenterY)}
	}
	return loc
}

func recordFrom(loc models.Location) record {
	r := record{
		ID:          flexID(loc.ID),
		Name:        loc.Name,
		Description: loc.Description,
		Top:         dimension(loc.Hotspot.Top),
		Left:        dimension(loc.Hotspot.Left),
		Width:       dimension(loc.Hotspot.Width),
		Height:      dimension(loc.Hotspot.Height),
	}
	if loc.Center != nil && loc.Center.Valid() {
		x, y := flexFloat(loc.Center.X), flexFloat(loc.Center.Y)
		r.CenterX, r.CenterY = &x, &y
	}
	return r
}

// flexID accepts both numeric and string ids
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

func (id flexID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// dimension accepts numbers and CSS-like strings such as "12%" or "40px".
// Unparsable values decode to 0, which leaves the hotspot without area.
type dimension float64

func (d *dimension) UnmarshalJSON(data []byte) error {
	v, ok := parseNumber(data)
	if !ok {
		glog.V(1).Infof("catalog: ignoring bad dimension %s", data)
		v = 0
	}
	*d = dimension(v)
	return nil
}

// flexFloat accepts a number or a numeric string. Unparsable values decode
// to NaN so that validation rejects the record instead of the decoder.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	v, ok := parseNumber(data)
	if !ok {
		v = math.NaN()
	}
	*f = flexFloat(v)
	return nil
}

func parseNumber(data []byte) (float64, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, false
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "%")
		s = strings.TrimSuffix(s, "px")
		s = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// DecodeJSON reads location records from r. The payload is either a bare
// array of records or an object with a "data" array. Elements that are not
// records are skipped.
func DecodeJSON(r io.Reader) ([]models.Location, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	var elems []json.RawMessage
	if raw[0] == '{' {
		var envelope struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode records: %w", err)
		}
		elems = envelope.Data
	} else if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	locs := make([]models.Location, 0, len(elems))
	for i, elem := range elems {
		var rec record
		if err := json.Unmarshal(elem, &rec); err != nil {
			glog.V(1).Infof("catalog: skipping record %d: %v", i, err)
			continue
		}
		locs = append(locs, rec.location())
	}
	return locs, nil
}

// EncodeJSON writes locs in the record transport shape
func EncodeJSON(w io.Writer, locs []models.Location) error {
	recs := make([]record, len(locs))
	for i, loc := range locs {
		recs[i] = recordFrom(loc)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}

// JSONFile is a Source reading a JSON file of location records
type JSONFile struct {
	Path string
}

func (j JSONFile) Load(ctx context.Context) ([]models.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(j.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return DecodeJSON(file)
}
