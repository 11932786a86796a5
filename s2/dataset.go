package s2

import (
	"fmt"
	"github.com/cyz14/s2cells/types/dataset"
	"github.com/golang/geo/s2"
)

// maxDatasetLevel caps generation; level 10 is already ~6M cells.
const maxDatasetLevel = CellLevel(10)

// LevelDataset builds the dataset covering the whole sphere at the given level,
// four [lat, lon] vertices per cell, cells in CellIDsAtLevel order.
func LevelDataset(level CellLevel) (*dataset.Dataset, error) {
	if !level.Valid() || level > maxDatasetLevel {
		return nil, fmt.Errorf("cannot generate dataset for level %d (max %d)", level, maxDatasetLevel)
	}
	ids := CellIDsAtLevel(level)
	ds := &dataset.Dataset{
		Level:  int(level),
		Points: make([]dataset.LatLon, 0, len(ids)*dataset.VerticesPerCell),
	}
	for _, id := range ids {
		ds.Append(CellBoundary(id))
	}
	return ds, nil
}

// CellBoundary converts a cell's vertices into a dataset boundary.
func CellBoundary(cellID s2.CellID) dataset.Boundary {
	var b dataset.Boundary
	for i, ll := range CellVertices(cellID) {
		b[i] = dataset.LatLon{ll.Lat.Degrees(), ll.Lng.Degrees()}
	}
	return b
}

// CellToken returns the S2 token of the cell at level whose boundary
// is b, located by the boundary's centroid. It is intended for labelling
// boundaries that came from a dataset rather than from a CellID.
func CellToken(b dataset.Boundary, level CellLevel) string {
	var sum s2.Point
	for _, ll := range b {
		p := s2.PointFromLatLng(s2.LatLngFromDegrees(ll.Lat(), ll.Lon()))
		sum = s2.Point{Vector: sum.Add(p.Vector)}
	}
	center := s2.Point{Vector: sum.Normalize()}
	return CellIDWithLevel(s2.CellIDFromLatLng(s2.LatLngFromPoint(center)), level).ToToken()
}
