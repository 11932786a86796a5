package testing

import (
	"os"
	"path/filepath"
)

const DefaultTestDirRoot = "s2cells-test"

// DefaultTestDir is a scratch directory shared by package tests.
// Tests should work in their own subdirectory and remove it when done.
func DefaultTestDir() string {
	return filepath.Join(os.TempDir(), DefaultTestDirRoot)
}
