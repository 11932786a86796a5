// Package dataset defines the level-indexed S2 cell dataset served as
// s2level{N}_cells.json and the validated decode step that turns its flat
// point buffer into quadrilateral cell boundaries.
package dataset

import (
	"encoding/json"
	"fmt"
	"math"
)

// VerticesPerCell is the number of consecutive points in Points describing one cell.
const VerticesPerCell = 4

// LatLon is a [lat, lon] pair in degrees.
type LatLon [2]float64

func (ll LatLon) Lat() float64 { return ll[0] }
func (ll LatLon) Lon() float64 { return ll[1] }

// Boundary is the ordered, unclosed outline of a single cell.
type Boundary [VerticesPerCell]LatLon

// Dataset is the decoded body of a cell data source.
// Invariant: len(Points) == NCells*4.
type Dataset struct {
	Level  int      `json:"level"`
	NCells int      `json:"ncells"`
	Points []LatLon `json:"points"`
}

// MalformedDatasetError is returned when a body does not conform to the dataset schema.
type MalformedDatasetError struct {
	Level  int
	NCells int
	Points int
	Reason string
}

func (e *MalformedDatasetError) Error() string {
	return fmt.Sprintf("malformed dataset (level=%d ncells=%d points=%d): %s",
		e.Level, e.NCells, e.Points, e.Reason)
}

// raw mirrors Dataset with loose point arity so that pairs can be checked.
type raw struct {
	Level  *int        `json:"level"`
	NCells *int        `json:"ncells"`
	Points [][]float64 `json:"points"`
}

// Decode parses and validates a dataset body.
// Syntax errors are returned as-is; schema violations as *MalformedDatasetError.
func Decode(data []byte) (*Dataset, error) {
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	ds := &Dataset{Points: make([]LatLon, 0, len(r.Points))}
	if r.Level != nil {
		ds.Level = *r.Level
	}
	if r.NCells != nil {
		ds.NCells = *r.NCells
	}
	malformed := func(reason string) error {
		return &MalformedDatasetError{Level: ds.Level, NCells: ds.NCells, Points: len(r.Points), Reason: reason}
	}
	if r.Level == nil {
		return nil, malformed("missing level")
	}
	if r.NCells == nil {
		return nil, malformed("missing ncells")
	}
	for i, p := range r.Points {
		if len(p) != 2 {
			return nil, malformed(fmt.Sprintf("point %d has %d values, want [lat, lon]", i, len(p)))
		}
		ds.Points = append(ds.Points, LatLon{p[0], p[1]})
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Validate checks the dataset invariants.
func (ds *Dataset) Validate() error {
	malformed := func(reason string) error {
		return &MalformedDatasetError{Level: ds.Level, NCells: ds.NCells, Points: len(ds.Points), Reason: reason}
	}
	if ds.Level < 0 || ds.Level > 30 {
		return malformed("level out of range [0, 30]")
	}
	if ds.NCells < 0 {
		return malformed("negative ncells")
	}
	if len(ds.Points)%VerticesPerCell != 0 {
		return malformed("points length is not a multiple of 4")
	}
	// Compare by division; ncells*4 can overflow.
	if ds.NCells != len(ds.Points)/VerticesPerCell {
		return malformed(fmt.Sprintf("points length %d does not hold ncells=%d cells of 4", len(ds.Points), ds.NCells))
	}
	for i, p := range ds.Points {
		if math.IsNaN(p.Lat()) || math.IsNaN(p.Lon()) ||
			p.Lat() < -90 || p.Lat() > 90 || p.Lon() < -180 || p.Lon() > 180 {
			return malformed(fmt.Sprintf("point %d out of range: %v", i, p))
		}
	}
	return nil
}

// Cell returns the boundary of cell i, points[4i..4i+4) in source order.
// It panics if i is out of range, like a slice index.
func (ds *Dataset) Cell(i int) Boundary {
	var b Boundary
	copy(b[:], ds.Points[i*VerticesPerCell:(i+1)*VerticesPerCell])
	return b
}

// Boundaries returns every cell boundary in source order.
func (ds *Dataset) Boundaries() []Boundary {
	out := make([]Boundary, 0, ds.NCells)
	for i := 0; i < ds.NCells; i++ {
		out = append(out, ds.Cell(i))
	}
	return out
}

// Append adds one cell to the dataset, keeping NCells consistent.
func (ds *Dataset) Append(b Boundary) {
	ds.Points = append(ds.Points, b[:]...)
	ds.NCells++
}
