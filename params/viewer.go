package params

import (
	"github.com/cyz14/s2cells/s2"
	"time"
)

type ViewerConfig struct {
	// DataSourceBase is the scheme and host prefixed to DataSourcePattern,
	// eg. http://localhost:3000.
	DataSourceBase string

	// Levels constrains level selection.
	Levels []s2.CellLevel

	// InitialLevel is loaded once when the viewer starts.
	InitialLevel s2.CellLevel

	// CellHeight is the fixed altitude in meters applied to every boundary vertex.
	CellHeight float64

	// RequestTimeout bounds a single dataset GET. Zero means no timeout.
	RequestTimeout time.Duration

	// PolygonsEnabled sets the initial visibility of the polygons layer.
	// The paths layer always starts enabled.
	PolygonsEnabled bool

	// EventBuffer is the capacity of the viewer's event queue.
	EventBuffer int
}

func DefaultViewerConfig() *ViewerConfig {
	return &ViewerConfig{
		DataSourceBase:  "http://localhost:3000",
		Levels:          SupportedLevels,
		InitialLevel:    DefaultLevel,
		CellHeight:      DefaultCellHeight,
		RequestTimeout:  30 * time.Second,
		PolygonsEnabled: false,
		EventBuffer:     16,
	}
}

func DefaultTestViewerConfig() *ViewerConfig {
	c := DefaultViewerConfig()
	c.DataSourceBase = ""
	c.RequestTimeout = 5 * time.Second
	return c
}
