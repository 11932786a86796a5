package render

import (
	"github.com/paulmach/orb"
	"testing"
	"time"
)

func square(alt float64) []Position {
	return []Position{
		NewPosition(0, 0, alt),
		NewPosition(0, 1, alt),
		NewPosition(1, 1, alt),
		NewPosition(1, 0, alt),
	}
}

func TestPath_Feature(t *testing.T) {
	p := NewPath(square(10), nil)
	p.AltitudeMode = RelativeToGround
	p.Properties = map[string]any{"cell": 3}
	f := p.Feature()

	ls, ok := f.Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("expected LineString, got %T", f.Geometry)
	}
	if len(ls) != 5 || !ls[0].Equal(ls[4]) {
		t.Errorf("expected a closed outline, got %v", ls)
	}
	if ls[1] != (orb.Point{1, 0}) {
		t.Errorf("expected [lon, lat] order, got %v", ls[1])
	}
	if f.Properties["kind"] != "path" || f.Properties["cell"] != 3 {
		t.Errorf("unexpected properties %v", f.Properties)
	}
	if f.Properties["altitudeMode"] != "relativeToGround" {
		t.Errorf("altitudeMode %v", f.Properties["altitudeMode"])
	}

	line := NewPath(square(0)[:2], nil).Feature().Geometry.(orb.LineString)
	if len(line) != 2 {
		t.Errorf("two point path should stay open, got %v", line)
	}
}

func TestPolygon_Feature(t *testing.T) {
	p := NewPolygon([][]Position{square(5)}, nil)
	f := p.Feature()
	poly, ok := f.Geometry.(orb.Polygon)
	if !ok {
		t.Fatalf("expected Polygon, got %T", f.Geometry)
	}
	if len(poly) != 1 || len(poly[0]) != 5 || !poly[0].Closed() {
		t.Errorf("expected one closed ring, got %v", poly)
	}
	alts := f.Properties["altitude"].([]float64)
	if len(alts) != 4 || alts[0] != 5 {
		t.Errorf("altitudes %v", alts)
	}
}

func TestLayer(t *testing.T) {
	l := NewRenderableLayer("Paths")
	if !l.Enabled || l.Len() != 0 {
		t.Fatal("new layer should be enabled and empty")
	}
	a, b := NewPath(square(1), nil), NewPath(square(2), nil)
	l.AddRenderable(a)
	l.AddRenderables(b)
	rs := l.Renderables()
	if len(rs) != 2 || rs[0] != a || rs[1] != b {
		t.Fatalf("renderables not in insertion order: %v", rs)
	}
	rs[0] = nil
	if l.Renderables()[0] != a {
		t.Error("Renderables should return a copy")
	}
	if got := len(l.FeatureCollection().Features); got != 2 {
		t.Errorf("features %d", got)
	}
	l.RemoveAllRenderables()
	if l.Len() != 0 {
		t.Error("layer not cleared")
	}
}

func TestLayer_Digest(t *testing.T) {
	l1, l2 := NewRenderableLayer("a"), NewRenderableLayer("b")
	l1.AddRenderable(NewPath(square(1), nil))
	l2.AddRenderable(NewPath(square(1), nil))
	d1, err := l1.Digest()
	if err != nil {
		t.Fatal(err)
	}
	d2, _ := l2.Digest()
	if d1 != d2 {
		t.Error("equal renderables should digest equally")
	}
	l2.Renderables()[0].(*Path).Attributes.OutlineWidth = 3
	d3, _ := l2.Digest()
	if d3 == d1 {
		t.Error("attribute change should change the digest")
	}
}

func TestGlobe_Redraw(t *testing.T) {
	g := NewGlobe()
	if _, ok := g.LastFrame(); ok {
		t.Fatal("no frame before first redraw")
	}
	paths := NewRenderableLayer("Paths")
	polygons := NewRenderableLayer("Polygons")
	polygons.Enabled = false
	g.AddLayer(paths)
	g.AddLayer(polygons)
	paths.AddRenderable(NewPath(square(1), nil))
	polygons.AddRenderable(NewPolygon([][]Position{square(1)}, nil))

	frames := make(chan Frame, 2)
	sub := g.SubscribeFrames(frames)
	defer sub.Unsubscribe()

	g.Redraw()
	g.Redraw()

	var f Frame
	for i := uint64(1); i <= 2; i++ {
		select {
		case f = <-frames:
		case <-time.After(time.Second):
			t.Fatal("frame not delivered")
		}
		if f.Seq != i {
			t.Errorf("seq %d, want %d", f.Seq, i)
		}
	}
	last, ok := g.LastFrame()
	if !ok || last.Seq != 2 {
		t.Errorf("last frame %v", last.Seq)
	}

	pf, _ := f.Layer("Paths")
	if !pf.Enabled || pf.Count != 1 || pf.Features == nil || len(pf.Features.Features) != 1 {
		t.Errorf("paths frame %+v", pf)
	}
	gf, _ := f.Layer("Polygons")
	if gf.Enabled || gf.Count != 1 || gf.Features != nil {
		t.Errorf("disabled layer should report count without features: %+v", gf)
	}
	if _, ok := f.Layer("Nope"); ok {
		t.Error("unknown layer")
	}
}
