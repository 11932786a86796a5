package render

import (
	"github.com/mitchellh/hashstructure/v2"
	"github.com/paulmach/orb/geojson"
)

// Layer is an ordered, independently toggleable collection of renderables.
// It is not safe for concurrent use; the owner of the Window mutates it.
type Layer struct {
	DisplayName string
	Enabled     bool

	renderables []Renderable
}

// NewRenderableLayer returns an enabled, empty layer.
func NewRenderableLayer(displayName string) *Layer {
	return &Layer{DisplayName: displayName, Enabled: true}
}

func (l *Layer) AddRenderable(r Renderable) {
	l.renderables = append(l.renderables, r)
}

func (l *Layer) AddRenderables(rs ...Renderable) {
	l.renderables = append(l.renderables, rs...)
}

func (l *Layer) RemoveAllRenderables() {
	l.renderables = nil
}

// Renderables returns the layer's renderables in insertion order.
func (l *Layer) Renderables() []Renderable {
	out := make([]Renderable, len(l.renderables))
	copy(out, l.renderables)
	return out
}

func (l *Layer) Len() int {
	return len(l.renderables)
}

// FeatureCollection encodes every renderable, in insertion order.
func (l *Layer) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range l.renderables {
		fc.Append(r.Feature())
	}
	return fc
}

// Digest hashes the layer's renderables, including every attribute value.
// Two layers holding equal renderables in the same order have equal digests.
func (l *Layer) Digest() (uint64, error) {
	return Digest(l.renderables)
}

// Digest hashes renderables by value.
func Digest(rs []Renderable) (uint64, error) {
	return hashstructure.Hash(rs, hashstructure.FormatV2, nil)
}
