// Package flat stores level datasets as plain files under a data directory,
// named like the data source they are served as.
package flat

import (
	"fmt"
	"github.com/cyz14/s2cells/params"
	"github.com/cyz14/s2cells/s2"
	"io"
	"os"
	"path/filepath"
)

type Flat struct {
	// path is the directory for flat file storage.
	path string
}

func NewFlatWithRoot(root string) *Flat {
	root = filepath.Clean(root)
	// If root is not absolute, make it absolute.
	if !filepath.IsAbs(root) {
		root, _ = filepath.Abs(root)
	}
	return &Flat{path: root}
}

// Joining returns a Flat for a subdirectory.
func (f *Flat) Joining(paths ...string) *Flat {
	return &Flat{path: filepath.Join(append([]string{f.path}, paths...)...)}
}

// Exists returns true if the directory exists.
func (f *Flat) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

func (f *Flat) MkdirAll() error {
	return os.MkdirAll(f.path, 0770)
}

func (f *Flat) Path() string {
	return f.path
}

// DatasetFileName is the file name for a level's dataset.
func DatasetFileName(level s2.CellLevel) string {
	return fmt.Sprintf(params.DatasetFileNamePattern, level)
}

// DatasetPath returns where the level's dataset lives in this directory.
func (f *Flat) DatasetPath(level s2.CellLevel) string {
	return filepath.Join(f.path, DatasetFileName(level))
}

// HasDataset reports whether a regular file exists for the level.
func (f *Flat) HasDataset(level s2.CellLevel) bool {
	fi, err := os.Stat(f.DatasetPath(level))
	return err == nil && fi.Mode().IsRegular()
}

// WriteNamed writes a file through a temporary file in the same directory
// and renames it into place, so readers never see a partial file.
func (f *Flat) WriteNamed(name string, write func(w io.Writer) error) error {
	if err := f.MkdirAll(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.path, "."+name+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0660); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(f.path, name))
}
