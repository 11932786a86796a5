package s2

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// CellIDWithLevel returns the cellID truncated to the given level.
// https://docs.s2cell.aliddell.com/en/stable/s2_concepts.html#truncation
func CellIDWithLevel(cellID s2.CellID, level CellLevel) s2.CellID {
	var lsb uint64 = 1 << (2 * (30 - level))
	truncatedCellID := (uint64(cellID) & -lsb) | lsb
	return s2.CellID(truncatedCellID)
}

// CellIDForLatLngLevel returns the cell at some level containing the given point in degrees.
func CellIDForLatLngLevel(lat, lng float64, level CellLevel) s2.CellID {
	return CellIDWithLevel(s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lng)), level)
}

// CellVertices returns the four corners of the cell in counter-clockwise order.
func CellVertices(cellID s2.CellID) [4]s2.LatLng {
	cell := s2.CellFromCellID(cellID)
	var vertices [4]s2.LatLng
	for i := 0; i < 4; i++ {
		vertices[i] = s2.LatLngFromPoint(cell.Vertex(i))
	}
	return vertices
}

// CellPolygon returns the cell outline as a closed orb polygon ([lon, lat] points).
func CellPolygon(cellID s2.CellID) orb.Polygon {
	vertices := CellVertices(cellID)
	ring := make(orb.Ring, 0, 5)
	for _, ll := range vertices {
		ring = append(ring, orb.Point{ll.Lng.Degrees(), ll.Lat.Degrees()})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// CellIDsAtLevel returns every cell at the level, face 0 through 5,
// each face walked in Hilbert curve order.
func CellIDsAtLevel(level CellLevel) []s2.CellID {
	out := make([]s2.CellID, 0, level.NumCells())
	for face := 0; face < 6; face++ {
		f := s2.CellIDFromFace(face)
		end := f.ChildEndAtLevel(int(level))
		for ci := f.ChildBeginAtLevel(int(level)); ci != end; ci = ci.Next() {
			out = append(out, ci)
		}
	}
	return out
}
