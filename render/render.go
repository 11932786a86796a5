// Package render is the renderable model the viewer draws into:
// layers of paths and polygons, attached to a Window that can be asked to redraw.
//
// The model follows the globe engine concepts the viewer was written against
// (renderable layer, path, polygon, shape attributes, altitude mode) without
// doing any projection or tessellation itself. Globe, the provided Window,
// turns each redraw into a GeoJSON Frame for whoever is watching.
package render

import (
	"github.com/paulmach/orb/geojson"
)

// AltitudeMode says how a position's altitude is interpreted.
type AltitudeMode int

const (
	Absolute AltitudeMode = iota
	RelativeToGround
	ClampToGround
)

func (m AltitudeMode) String() string {
	switch m {
	case Absolute:
		return "absolute"
	case RelativeToGround:
		return "relativeToGround"
	case ClampToGround:
		return "clampToGround"
	}
	return "unknown"
}

// Position is a geographic position in degrees with altitude in meters.
type Position struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

func NewPosition(lat, lon, alt float64) Position {
	return Position{Latitude: lat, Longitude: lon, Altitude: alt}
}

// Color components are in [0, 1].
type Color struct {
	R, G, B, A float64
}

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
	Red   = Color{1, 0, 0, 1}
	Green = Color{0, 1, 0, 1}
	Blue  = Color{0, 0, 1, 1}
	Cyan  = Color{0, 1, 1, 1}
)

// WithAlpha returns a copy of c with the given opacity.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// ShapeAttributes control how a shape is drawn.
type ShapeAttributes struct {
	DrawInterior  bool
	DrawOutline   bool
	InteriorColor Color
	OutlineColor  Color
	OutlineWidth  float64
	DrawVerticals bool
	ApplyLighting bool
}

// NewShapeAttributes returns the engine defaults:
// interior and outline drawn, white interior, red outline one pixel wide.
func NewShapeAttributes() *ShapeAttributes {
	return &ShapeAttributes{
		DrawInterior:  true,
		DrawOutline:   true,
		InteriorColor: White,
		OutlineColor:  Red,
		OutlineWidth:  1,
	}
}

// Renderable is anything a Layer can hold.
type Renderable interface {
	// Feature encodes the renderable as GeoJSON for frames.
	Feature() *geojson.Feature
}

// Window is the view a viewer draws into.
type Window interface {
	AddLayer(layer *Layer)
	Redraw()
}
