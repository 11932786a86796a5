package flat

import (
	"encoding/json"
	"github.com/cyz14/s2cells/s2"
	s2testing "github.com/cyz14/s2cells/testing"
	"github.com/cyz14/s2cells/types/dataset"
	"io"
	"os"
	"testing"
)

func TestFlat_WriteDataset(t *testing.T) {
	f := NewFlatWithRoot(s2testing.DefaultTestDir()).Joining("flat")
	defer os.RemoveAll(f.Path())

	if f.HasDataset(s2.CellLevel1) {
		t.Fatal("dataset should not exist yet")
	}
	ds, err := s2.LevelDataset(s2.CellLevel1)
	if err != nil {
		t.Fatal(err)
	}
	err = f.WriteNamed(DatasetFileName(s2.CellLevel1), func(w io.Writer) error {
		return json.NewEncoder(w).Encode(ds)
	})
	if err != nil {
		t.Fatal(err)
	}
	if !f.HasDataset(s2.CellLevel1) {
		t.Fatal("dataset not written")
	}
	if f.DatasetPath(s2.CellLevel1) != f.Path()+"/s2level1_cells.json" {
		t.Errorf("unexpected path %s", f.DatasetPath(s2.CellLevel1))
	}

	b, err := os.ReadFile(f.DatasetPath(s2.CellLevel1))
	if err != nil {
		t.Fatal(err)
	}
	got, err := dataset.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if got.NCells != 24 {
		t.Errorf("want 24 cells, got %d", got.NCells)
	}

	entries, err := os.ReadDir(f.Path())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}
