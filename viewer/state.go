package viewer

import (
	"fmt"
	"github.com/cyz14/s2cells/s2"
	"github.com/cyz14/s2cells/types/dataset"
)

// ViewState is the viewer's mutable selection state.
// Only the viewer's event loop writes it.
type ViewState struct {
	CurrentLevel   s2.CellLevel
	CurrentDataset *dataset.Dataset

	// Generation increments on every level selection.
	// A load result is current only if it carries the same generation.
	Generation uint64

	// Source is the resolved data source for CurrentLevel.
	Source string

	// Loading is true between a selection and its (current) completion.
	Loading bool

	// Failure is the visible indicator for a failed load, empty otherwise.
	Failure string
	LastErr error
}

// NCells is the number of cells in the current dataset.
func (vs ViewState) NCells() int {
	if vs.CurrentDataset == nil {
		return 0
	}
	return vs.CurrentDataset.NCells
}

func FailureText(level s2.CellLevel) string {
	return fmt.Sprintf("failed to load level %d", level)
}
