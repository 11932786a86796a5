package render

import (
	"github.com/ethereum/go-ethereum/event"
	"github.com/paulmach/orb/geojson"
	"log/slog"
	"sync"
	"time"
)

// LayerFrame is the drawn state of one layer.
// Disabled layers are reported with their count but without features.
type LayerFrame struct {
	Name     string                     `json:"name"`
	Enabled  bool                       `json:"enabled"`
	Count    int                        `json:"count"`
	Digest   uint64                     `json:"digest"`
	Features *geojson.FeatureCollection `json:"features,omitempty"`
}

// Frame is the result of one redraw.
type Frame struct {
	Seq    uint64       `json:"seq"`
	Time   time.Time    `json:"time"`
	Layers []LayerFrame `json:"layers"`
}

// Layer returns the named layer's frame, if any.
func (f Frame) Layer(name string) (LayerFrame, bool) {
	for _, l := range f.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return LayerFrame{}, false
}

// Globe is a headless Window. Each Redraw snapshots its layers into a Frame
// and sends it to frame subscribers.
//
// AddLayer and Redraw must be called from the goroutine that owns the layers.
// LastFrame and SubscribeFrames are safe from anywhere.
type Globe struct {
	layers []*Layer
	seq    uint64

	feed event.FeedOf[Frame]

	mu   sync.RWMutex
	last *Frame

	logger *slog.Logger
}

func NewGlobe() *Globe {
	return &Globe{
		logger: slog.With("window", "globe"),
	}
}

func (g *Globe) AddLayer(layer *Layer) {
	g.layers = append(g.layers, layer)
}

// Layers returns the attached layers in draw order.
func (g *Globe) Layers() []*Layer {
	out := make([]*Layer, len(g.layers))
	copy(out, g.layers)
	return out
}

// Redraw builds a frame and sends it.
// Send blocks until every subscriber has received the frame, so subscribers must keep draining.
func (g *Globe) Redraw() {
	g.seq++
	frame := Frame{
		Seq:    g.seq,
		Time:   time.Now(),
		Layers: make([]LayerFrame, 0, len(g.layers)),
	}
	for _, l := range g.layers {
		lf := LayerFrame{
			Name:    l.DisplayName,
			Enabled: l.Enabled,
			Count:   l.Len(),
		}
		digest, err := l.Digest()
		if err != nil {
			g.logger.Warn("Failed to digest layer", "layer", l.DisplayName, "error", err)
		}
		lf.Digest = digest
		if l.Enabled {
			lf.Features = l.FeatureCollection()
		}
		frame.Layers = append(frame.Layers, lf)
	}

	g.mu.Lock()
	g.last = &frame
	g.mu.Unlock()

	g.logger.Debug("Redraw", "seq", frame.Seq, "layers", len(frame.Layers))
	g.feed.Send(frame)
}

// LastFrame returns the most recent frame, or false before the first redraw.
func (g *Globe) LastFrame() (Frame, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.last == nil {
		return Frame{}, false
	}
	return *g.last, true
}

// SubscribeFrames delivers every subsequent frame to ch.
func (g *Globe) SubscribeFrames(ch chan<- Frame) event.Subscription {
	return g.feed.Subscribe(ch)
}
