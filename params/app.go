package params

import (
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/mitchellh/go-homedir"
	"path/filepath"
	"time"
)

func init() {
	metrics.Enabled = true
}

// DatadirRoot is where generated cell datasets live unless told otherwise.
var DatadirRoot = func() string {
	home, err := homedir.Dir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(home, ".s2cells")
}()

// DataSourcePattern resolves a cell level to its dataset path on the data server.
const DataSourcePattern = "/examples/data/s2level%d_cells.json"

// DataSourceRoute is DataSourcePattern as a mux route template.
const DataSourceRoute = "/examples/data/s2level{level:[0-9]+}_cells.json"

// DatasetFileNamePattern is the on-disk name of a level's dataset,
// matching the last element of DataSourcePattern.
const DatasetFileNamePattern = "s2level%d_cells.json"

var (
	// CacheLastFrameTTL bounds how long the most recent redraw frame
	// is replayed to newly connected websocket clients.
	CacheLastFrameTTL = 1 * time.Hour

	// CacheDatasetsSize is the number of encoded datasets kept in memory by the web daemon.
	CacheDatasetsSize = 8

	// StatusRecentLoads is the number of load results listed by the web daemon's status.
	StatusRecentLoads = 10
)
