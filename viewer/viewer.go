// Package viewer loads level-indexed S2 cell datasets and draws every cell
// as an extruded boundary path and an extruded polygon.
//
// A Viewer owns two layers, "Paths" and "Polygons", and a ViewState.
// All of them are touched only by the goroutine running Viewer.Run.
// Selections, layer toggles and load completions are events queued to that
// goroutine, so a level switch and the loads it races with never interleave.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"github.com/cyz14/s2cells/params"
	"github.com/cyz14/s2cells/render"
	"github.com/cyz14/s2cells/s2"
	"github.com/ethereum/go-ethereum/event"
	"log/slog"
)

const (
	PathsLayerName    = "Paths"
	PolygonsLayerName = "Polygons"
)

// ErrStopped is returned when posting to a viewer whose Run has returned.
var ErrStopped = errors.New("viewer stopped")

type selectEvent struct {
	level s2.CellLevel
}

type loadedEvent struct {
	result LoadResult
}

type toggleEvent struct {
	layer   string
	enabled bool
}

type snapshotEvent struct {
	reply chan ViewState
}

type Viewer struct {
	Config   *params.ViewerConfig
	Window   render.Window
	Loader   *Loader
	Style    Style
	Paths    *render.Layer
	Polygons *render.Layer

	state ViewState

	events  chan any
	done    chan struct{}
	metrics *viewerMetrics
	logger  *slog.Logger

	feedLoaded event.FeedOf[LoadResult]
}

// NewViewer attaches the paths layer (enabled) and the polygons layer
// (enabled per config, off by default) to the window.
// A nil loader is built from config.
func NewViewer(config *params.ViewerConfig, window render.Window, loader *Loader) *Viewer {
	if config == nil {
		config = params.DefaultViewerConfig()
	}
	if loader == nil {
		loader = NewLoader(config, nil)
	}
	buffer := config.EventBuffer
	if buffer < 1 {
		buffer = 1
	}

	paths := render.NewRenderableLayer(PathsLayerName)
	polygons := render.NewRenderableLayer(PolygonsLayerName)
	polygons.Enabled = config.PolygonsEnabled
	window.AddLayer(paths)
	window.AddLayer(polygons)

	return &Viewer{
		Config:   config,
		Window:   window,
		Loader:   loader,
		Style:    DefaultStyle(),
		Paths:    paths,
		Polygons: polygons,
		events:   make(chan any, buffer),
		done:     make(chan struct{}),
		metrics:  newViewerMetrics(),
		logger:   slog.With("viewer", "cells"),
	}
}

// Run loads the initial level and then processes events until ctx is done.
// It must be called once.
func (v *Viewer) Run(ctx context.Context) error {
	defer close(v.done)

	if !params.IsSupportedLevel(v.Config.Levels, v.Config.InitialLevel) {
		return fmt.Errorf("%w: initial level %d", ErrUnsupportedLevel, v.Config.InitialLevel)
	}
	v.switchLevel(ctx, v.Config.InitialLevel)

	for {
		select {
		case <-ctx.Done():
			v.logger.Info("Viewer stopped", "level", v.state.CurrentLevel)
			return nil
		case e := <-v.events:
			v.handle(ctx, e)
		}
	}
}

// Select queues a switch to level. It fails fast for levels outside the configured set.
func (v *Viewer) Select(ctx context.Context, level s2.CellLevel) error {
	if !params.IsSupportedLevel(v.Config.Levels, level) {
		return fmt.Errorf("%w: %d (supported: %v)", ErrUnsupportedLevel, level, v.Config.Levels)
	}
	return v.post(ctx, selectEvent{level: level})
}

// SetLayerEnabled queues a visibility change for the named layer, followed by a redraw.
func (v *Viewer) SetLayerEnabled(ctx context.Context, layer string, enabled bool) error {
	if layer != PathsLayerName && layer != PolygonsLayerName {
		return fmt.Errorf("unknown layer %q", layer)
	}
	return v.post(ctx, toggleEvent{layer: layer, enabled: enabled})
}

// State returns a copy of the view state as of the loop's next turn.
func (v *Viewer) State(ctx context.Context) (ViewState, error) {
	reply := make(chan ViewState, 1)
	if err := v.post(ctx, snapshotEvent{reply: reply}); err != nil {
		return ViewState{}, err
	}
	select {
	case st := <-reply:
		return st, nil
	case <-v.done:
		return ViewState{}, ErrStopped
	case <-ctx.Done():
		return ViewState{}, ctx.Err()
	}
}

// Stats returns cumulative counters. Safe from any goroutine.
func (v *Viewer) Stats() Stats {
	return v.metrics.stats()
}

// SubscribeLoaded delivers every load result, including stale ones, after it has been applied.
// Delivery blocks the viewer loop, so subscribers must keep draining.
func (v *Viewer) SubscribeLoaded(ch chan<- LoadResult) event.Subscription {
	return v.feedLoaded.Subscribe(ch)
}

// Done is closed when Run returns.
func (v *Viewer) Done() <-chan struct{} {
	return v.done
}

func (v *Viewer) post(ctx context.Context, e any) error {
	select {
	case v.events <- e:
		return nil
	case <-v.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *Viewer) handle(ctx context.Context, e any) {
	switch e := e.(type) {
	case selectEvent:
		v.switchLevel(ctx, e.level)
	case loadedEvent:
		v.loaded(e.result)
	case toggleEvent:
		layer := v.Paths
		if e.layer == PolygonsLayerName {
			layer = v.Polygons
		}
		layer.Enabled = e.enabled
		v.Window.Redraw()
	case snapshotEvent:
		e.reply <- v.state
	default:
		v.logger.Warn("Unknown viewer event", "event", fmt.Sprintf("%T", e))
	}
}

// switchLevel clears both layers, resolves the source, issues the load and redraws,
// in that order. The redraw shows the cleared state; loaded redraws again.
func (v *Viewer) switchLevel(ctx context.Context, level s2.CellLevel) {
	v.Paths.RemoveAllRenderables()
	v.Polygons.RemoveAllRenderables()

	v.state.CurrentLevel = level
	v.state.CurrentDataset = nil
	v.state.Source = v.Loader.Source(level)
	v.state.Generation++
	v.state.Loading = true
	v.state.Failure = ""
	v.state.LastErr = nil
	v.metrics.selections.Inc(1)

	v.logger.Info("Selected level", "level", level, "generation", v.state.Generation, "source", v.state.Source)

	v.Loader.Load(ctx, level, v.state.Generation, func(res LoadResult) {
		// Posting uses a background context: a completion racing shutdown
		// is dropped by the done channel instead.
		if err := v.post(context.Background(), loadedEvent{result: res}); err != nil {
			v.logger.Debug("Dropped load result", "level", res.Level, "error", err)
		}
	})

	v.Window.Redraw()
}

func (v *Viewer) loaded(res LoadResult) {
	if res.Generation != v.state.Generation {
		res.Stale = true
		v.metrics.loadsStale.Inc(1)
		v.logger.Info("Discarding stale load", "level", res.Level,
			"generation", res.Generation, "current", v.state.Generation)
		v.feedLoaded.Send(res)
		return
	}

	v.state.Loading = false
	v.metrics.loadDuration.Update(res.Elapsed)

	if res.Err != nil {
		v.state.Failure = FailureText(res.Level)
		v.state.LastErr = res.Err
		v.metrics.loadsFailed.Inc(1)
		v.logger.Warn("Load failed", "level", res.Level, "error", res.Err)
	} else {
		n := MaterializeInto(res.Dataset, v.Paths, v.Polygons, v.Config.CellHeight, v.Style)
		v.state.CurrentDataset = res.Dataset
		v.metrics.loadsOK.Inc(1)
		v.metrics.cells.Inc(int64(n))
		v.logger.Info("Level:", "level", res.Dataset.Level, "ncells", n)
	}

	v.Window.Redraw()
	v.feedLoaded.Send(res)
}
