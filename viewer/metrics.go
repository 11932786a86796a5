package viewer

import (
	"github.com/ethereum/go-ethereum/metrics"
)

type viewerMetrics struct {
	reg          metrics.Registry
	selections   metrics.Counter
	loadsOK      metrics.Counter
	loadsFailed  metrics.Counter
	loadsStale   metrics.Counter
	cells        metrics.Counter
	loadDuration metrics.Timer
}

func newViewerMetrics() *viewerMetrics {
	reg := metrics.NewRegistry()
	return &viewerMetrics{
		reg:          reg,
		selections:   metrics.NewRegisteredCounter("viewer/selections", reg),
		loadsOK:      metrics.NewRegisteredCounter("viewer/loads/ok", reg),
		loadsFailed:  metrics.NewRegisteredCounter("viewer/loads/failed", reg),
		loadsStale:   metrics.NewRegisteredCounter("viewer/loads/stale", reg),
		cells:        metrics.NewRegisteredCounter("viewer/cells", reg),
		loadDuration: metrics.NewRegisteredTimer("viewer/loads/duration", reg),
	}
}

// Stats are cumulative viewer counters.
type Stats struct {
	Selections  int64 `json:"selections"`
	LoadsOK     int64 `json:"loads_ok"`
	LoadsFailed int64 `json:"loads_failed"`
	LoadsStale  int64 `json:"loads_stale"`
	Cells       int64 `json:"cells"`
}

func (m *viewerMetrics) stats() Stats {
	return Stats{
		Selections:  m.selections.Snapshot().Count(),
		LoadsOK:     m.loadsOK.Snapshot().Count(),
		LoadsFailed: m.loadsFailed.Snapshot().Count(),
		LoadsStale:  m.loadsStale.Snapshot().Count(),
		Cells:       m.cells.Snapshot().Count(),
	}
}
