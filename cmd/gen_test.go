package cmd

import (
	"github.com/cyz14/s2cells/types/dataset"
	"os"
	"path/filepath"
	"testing"
)

func TestGenCmd(t *testing.T) {
	out := t.TempDir()
	rootCmd.SetArgs([]string{"gen", "--out", out, "--levels", "1,2", "--log.level", "warn"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]int{
		"s2level1_cells.json": 24,
		"s2level2_cells.json": 96,
	} {
		b, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Fatal(err)
		}
		ds, err := dataset.Decode(b)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if ds.NCells != want {
			t.Errorf("%s: want %d cells, got %d", name, want, ds.NCells)
		}
	}
}
