package s2

import (
	"github.com/golang/geo/s2"
	"testing"
)

func TestCellLevel_NumCells(t *testing.T) {
	for level, want := range map[CellLevel]int{0: 6, 1: 24, 2: 96, 3: 384, 4: 1536} {
		if got := level.NumCells(); got != want {
			t.Errorf("level %d: want %d, got %d", level, want, got)
		}
	}
	if CellLevel(31).Valid() || CellLevel(-1).Valid() || !CellLevelMax.Valid() {
		t.Error("unexpected validity")
	}
}

func TestCellIDWithLevel(t *testing.T) {
	leaf := s2.CellIDFromLatLng(s2.LatLngFromDegrees(46.8, -92.1))
	for level := CellLevel0; level <= CellLevel6; level++ {
		got := CellIDWithLevel(leaf, level)
		if want := leaf.Parent(int(level)); got != want {
			t.Errorf("level %d: want %v, got %v", level, want, got)
		}
		if got.Level() != int(level) {
			t.Errorf("level %d: truncated to level %d", level, got.Level())
		}
	}
	if CellIDForLatLngLevel(46.8, -92.1, CellLevel3) != leaf.Parent(3) {
		t.Error("CellIDForLatLngLevel disagrees with Parent")
	}
}

func TestCellIDsAtLevel(t *testing.T) {
	for _, level := range []CellLevel{CellLevel0, CellLevel1, CellLevel2} {
		ids := CellIDsAtLevel(level)
		if len(ids) != level.NumCells() {
			t.Fatalf("level %d: want %d cells, got %d", level, level.NumCells(), len(ids))
		}
		seen := map[s2.CellID]bool{}
		for i, id := range ids {
			if id.Level() != int(level) {
				t.Fatalf("cell %d at level %d", i, id.Level())
			}
			if i > 0 && ids[i-1] >= id {
				t.Fatalf("cells not in curve order at %d", i)
			}
			seen[id] = true
		}
		if len(seen) != len(ids) {
			t.Error("duplicate cells")
		}
	}
}

func TestCellPolygon(t *testing.T) {
	poly := CellPolygon(s2.CellIDFromFace(0).ChildBeginAtLevel(2))
	if len(poly) != 1 || len(poly[0]) != 5 || !poly[0].Closed() {
		t.Fatalf("expected one closed 4 vertex ring, got %v", poly)
	}
}

func TestLevelDataset(t *testing.T) {
	for _, level := range []CellLevel{CellLevel1, CellLevel2, CellLevel3, CellLevel4} {
		ds, err := LevelDataset(level)
		if err != nil {
			t.Fatal(err)
		}
		if ds.Level != int(level) || ds.NCells != level.NumCells() {
			t.Errorf("level %d: got level %d ncells %d", level, ds.Level, ds.NCells)
		}
		if err := ds.Validate(); err != nil {
			t.Errorf("level %d: %v", level, err)
		}
	}
	if _, err := LevelDataset(CellLevel(11)); err == nil {
		t.Error("expected error for level 11")
	}
}

func TestCellToken(t *testing.T) {
	ids := CellIDsAtLevel(CellLevel2)
	for _, id := range []s2.CellID{ids[0], ids[17], ids[len(ids)-1]} {
		if got := CellToken(CellBoundary(id), CellLevel2); got != id.ToToken() {
			t.Errorf("want token %s, got %s", id.ToToken(), got)
		}
	}
}
