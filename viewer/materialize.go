package viewer

import (
	"github.com/cyz14/s2cells/render"
	"github.com/cyz14/s2cells/s2"
	"github.com/cyz14/s2cells/types/dataset"
	"maps"
)

// Style holds the attributes applied to materialized cells.
// Each renderable gets its own copy, so mutating one cell's attributes
// (eg. on highlight) does not touch the others.
type Style struct {
	Path    render.ShapeAttributes
	Polygon render.ShapeAttributes
}

// DefaultStyle outlines cells in white over a translucent cyan interior,
// and fills polygons solid white with lighting.
func DefaultStyle() Style {
	path := *render.NewShapeAttributes()
	path.OutlineColor = render.White
	path.InteriorColor = render.Cyan.WithAlpha(0.5)
	path.DrawVerticals = true

	polygon := *render.NewShapeAttributes()
	polygon.InteriorColor = render.White
	polygon.DrawVerticals = true
	polygon.ApplyLighting = true

	return Style{Path: path, Polygon: polygon}
}

// BoundaryPositions lifts a cell boundary to positions at a fixed height.
func BoundaryPositions(b dataset.Boundary, height float64) []render.Position {
	positions := make([]render.Position, 0, len(b))
	for _, ll := range b {
		positions = append(positions, render.NewPosition(ll.Lat(), ll.Lon(), height))
	}
	return positions
}

// Materialize builds one boundary path and one polygon per cell,
// in the dataset's cell order.
func Materialize(ds *dataset.Dataset, height float64, style Style) (paths []*render.Path, polygons []*render.Polygon) {
	if ds == nil {
		return nil, nil
	}
	paths = make([]*render.Path, 0, ds.NCells)
	polygons = make([]*render.Polygon, 0, ds.NCells)
	for i := 0; i < ds.NCells; i++ {
		boundary := ds.Cell(i)
		props := cellProperties(ds.Level, i, boundary)

		pathAttributes := style.Path
		path := render.NewPath(BoundaryPositions(boundary, height), &pathAttributes)
		path.AltitudeMode = render.RelativeToGround
		path.FollowTerrain = true
		path.Extrude = true
		path.UseSurfaceShapeFor2D = true
		// Draw verticals only when extruding.
		path.Attributes.DrawVerticals = path.Extrude
		path.Properties = props
		paths = append(paths, path)

		polygonAttributes := style.Polygon
		polygon := render.NewPolygon([][]render.Position{BoundaryPositions(boundary, height)}, &polygonAttributes)
		polygon.AltitudeMode = render.Absolute
		polygon.Extrude = true
		polygon.Attributes.DrawVerticals = polygon.Extrude
		polygon.Properties = maps.Clone(props)
		polygons = append(polygons, polygon)
	}
	return paths, polygons
}

// MaterializeInto appends the dataset's cells to the two layers and
// returns the number of cells added.
func MaterializeInto(ds *dataset.Dataset, pathsLayer, polygonsLayer *render.Layer, height float64, style Style) int {
	paths, polygons := Materialize(ds, height, style)
	for _, p := range paths {
		pathsLayer.AddRenderable(p)
	}
	for _, p := range polygons {
		polygonsLayer.AddRenderable(p)
	}
	return len(paths)
}

func cellProperties(level, index int, b dataset.Boundary) map[string]any {
	return map[string]any{
		"level": level,
		"cell":  index,
		"token": s2.CellToken(b, s2.CellLevel(level)),
	}
}
