package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Path is a polyline through positions, optionally extruded down to the terrain.
type Path struct {
	Positions            []Position
	AltitudeMode         AltitudeMode
	FollowTerrain        bool
	Extrude              bool
	UseSurfaceShapeFor2D bool
	Attributes           *ShapeAttributes

	// Properties are copied onto the GeoJSON feature.
	Properties map[string]any
}

// NewPath returns a path through positions with engine defaults.
func NewPath(positions []Position, attributes *ShapeAttributes) *Path {
	if attributes == nil {
		attributes = NewShapeAttributes()
	}
	return &Path{
		Positions:    positions,
		AltitudeMode: Absolute,
		Attributes:   attributes,
	}
}

// Feature encodes the path as a LineString. A path that outlines an area
// (more than two positions) is closed back to its first position.
func (p *Path) Feature() *geojson.Feature {
	ls := make(orb.LineString, 0, len(p.Positions)+1)
	for _, pos := range p.Positions {
		ls = append(ls, orb.Point{pos.Longitude, pos.Latitude})
	}
	if len(ls) > 2 && !ls[0].Equal(ls[len(ls)-1]) {
		ls = append(ls, ls[0])
	}
	f := geojson.NewFeature(ls)
	for k, v := range p.Properties {
		f.Properties[k] = v
	}
	f.Properties["kind"] = "path"
	f.Properties["altitude"] = altitudes(p.Positions)
	f.Properties["altitudeMode"] = p.AltitudeMode.String()
	f.Properties["followTerrain"] = p.FollowTerrain
	f.Properties["extrude"] = p.Extrude
	setAttributeProperties(f, p.Attributes)
	return f
}

// Polygon is a filled area bounded by one or more rings, optionally extruded into walls.
type Polygon struct {
	Boundaries   [][]Position
	AltitudeMode AltitudeMode
	Extrude      bool
	Attributes   *ShapeAttributes

	// Properties are copied onto the GeoJSON feature.
	Properties map[string]any
}

// NewPolygon returns a polygon with engine defaults.
// The first boundary is the outer ring.
func NewPolygon(boundaries [][]Position, attributes *ShapeAttributes) *Polygon {
	if attributes == nil {
		attributes = NewShapeAttributes()
	}
	return &Polygon{
		Boundaries:   boundaries,
		AltitudeMode: Absolute,
		Attributes:   attributes,
	}
}

// Feature encodes the polygon with each ring closed.
func (p *Polygon) Feature() *geojson.Feature {
	poly := make(orb.Polygon, 0, len(p.Boundaries))
	var alts []float64
	for _, boundary := range p.Boundaries {
		ring := make(orb.Ring, 0, len(boundary)+1)
		for _, pos := range boundary {
			ring = append(ring, orb.Point{pos.Longitude, pos.Latitude})
		}
		if len(ring) > 0 && !ring.Closed() {
			ring = append(ring, ring[0])
		}
		poly = append(poly, ring)
		alts = append(alts, altitudes(boundary)...)
	}
	f := geojson.NewFeature(poly)
	for k, v := range p.Properties {
		f.Properties[k] = v
	}
	f.Properties["kind"] = "polygon"
	f.Properties["altitude"] = alts
	f.Properties["altitudeMode"] = p.AltitudeMode.String()
	f.Properties["extrude"] = p.Extrude
	setAttributeProperties(f, p.Attributes)
	return f
}

func altitudes(positions []Position) []float64 {
	out := make([]float64, len(positions))
	for i, pos := range positions {
		out[i] = pos.Altitude
	}
	return out
}

func setAttributeProperties(f *geojson.Feature, a *ShapeAttributes) {
	if a == nil {
		return
	}
	f.Properties["drawInterior"] = a.DrawInterior
	f.Properties["drawOutline"] = a.DrawOutline
	f.Properties["interiorColor"] = [4]float64{a.InteriorColor.R, a.InteriorColor.G, a.InteriorColor.B, a.InteriorColor.A}
	f.Properties["outlineColor"] = [4]float64{a.OutlineColor.R, a.OutlineColor.G, a.OutlineColor.B, a.OutlineColor.A}
	f.Properties["outlineWidth"] = a.OutlineWidth
	f.Properties["drawVerticals"] = a.DrawVerticals
	f.Properties["applyLighting"] = a.ApplyLighting
}
