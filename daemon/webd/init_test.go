package webd

import (
	"github.com/cyz14/s2cells/params"
	"os"
	"testing"
)

// newTestWebDaemon creates a new WebDaemon for testing purposes,
// listening on a free local port.
// If datadir is empty, one will provided for you.
func newTestWebDaemon(t *testing.T, datadir string) *WebDaemon {
	t.Helper()
	config := params.DefaultTestWebDaemonConfig()
	config.Address = "127.0.0.1:0"
	if datadir != "" {
		config.DataDir = datadir
	} else {
		tmpd, err := os.MkdirTemp(os.TempDir(), "s2cells-webd-test")
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.RemoveAll(tmpd) })
		config.DataDir = tmpd
	}
	daemon, err := NewWebDaemon(config)
	if err != nil {
		t.Fatal(err)
	}
	return daemon
}
