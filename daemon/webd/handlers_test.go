package webd

import (
	"encoding/json"
	"github.com/cyz14/s2cells/common"
	"github.com/cyz14/s2cells/flat"
	"github.com/cyz14/s2cells/s2"
	"github.com/tidwall/gjson"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func serve(t *testing.T, d *WebDaemon, method, target string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	d.newRouter().ServeHTTP(w, req)
	resp := w.Result()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestWebDaemon_ping(t *testing.T) {
	req := httptest.NewRequest("GET", "http://localhost/ping", nil)
	w := httptest.NewRecorder()
	pingPong(w, req)
	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		t.Fatalf("status code not 200")
	}
	if string(body) != "pong" {
		t.Errorf("body is not pong: %s", string(body))
	}
}

func TestWebDaemon_statusReport(t *testing.T) {
	d := newTestWebDaemon(t, "")
	d.started = time.Now().Add(-time.Minute)
	resp, body := serve(t, d, "GET", "http://localhost/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type %q", ct)
	}
	status := webDaemonStatus{}
	if err := json.Unmarshal(body, &status); err != nil {
		t.Fatal(err)
	}
	if status.Uptime != "1m0s" {
		t.Errorf("uptime %q", status.Uptime)
	}
	if status.Viewer != nil {
		t.Error("no viewer before start")
	}
}

func TestWebDaemon_levelDataset_Generated(t *testing.T) {
	defer common.SlogResetLevel(slog.LevelWarn)()
	d := newTestWebDaemon(t, "")
	resp, body := serve(t, d, "GET", "http://localhost/examples/data/s2level2_cells.json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code %d: %s", resp.StatusCode, body)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
	if got := gjson.GetBytes(body, "level").Int(); got != 2 {
		t.Errorf("level %d", got)
	}
	if got := gjson.GetBytes(body, "ncells").Int(); got != 96 {
		t.Errorf("ncells %d", got)
	}
	if got := gjson.GetBytes(body, "points.#").Int(); got != 96*4 {
		t.Errorf("points %d", got)
	}
	if !d.datasets.Contains(s2.CellLevel2) {
		t.Error("dataset not cached")
	}

	// Served from cache the second time, byte for byte.
	_, again := serve(t, d, "GET", "http://localhost/examples/data/s2level2_cells.json")
	if string(again) != string(body) {
		t.Error("cached body differs")
	}
}

func TestWebDaemon_levelDataset_File(t *testing.T) {
	d := newTestWebDaemon(t, "")
	f := flat.NewFlatWithRoot(d.Config.DataDir)
	err := f.WriteNamed(flat.DatasetFileName(s2.CellLevel1), func(w io.Writer) error {
		_, err := w.Write([]byte(`{"level":1,"ncells":0,"points":[]}`))
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	resp, body := serve(t, d, "GET", "http://localhost/examples/data/s2level1_cells.json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code %d", resp.StatusCode)
	}
	if got := gjson.GetBytes(body, "ncells"); !got.Exists() || got.Int() != 0 {
		t.Errorf("expected the file's empty dataset, got %s", body)
	}
	if d.datasets.Contains(s2.CellLevel1) {
		t.Error("file datasets are not cached")
	}
}

func TestWebDaemon_levelDataset_NotFound(t *testing.T) {
	d := newTestWebDaemon(t, "")
	for _, target := range []string{
		"http://localhost/examples/data/s2level9_cells.json",
		"http://localhost/examples/data/s2level0_cells.json",
		"http://localhost/examples/data/s2levelx_cells.json",
	} {
		resp, _ := serve(t, d, "GET", target)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status code %d", target, resp.StatusCode)
		}
	}
}

func TestWebDaemon_routerDoesNotWire(t *testing.T) {
	d := newTestWebDaemon(t, "")
	for i := 0; i < 3; i++ {
		serve(t, d, "GET", "http://localhost/ping")
	}
	if len(d.subs) != 0 || d.melodyInstance != nil {
		t.Fatalf("routing alone should not subscribe: %d subscriptions", len(d.subs))
	}
	resp, _ := serve(t, d, "GET", "http://localhost/ws")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("websocket before start: status code %d", resp.StatusCode)
	}
}
