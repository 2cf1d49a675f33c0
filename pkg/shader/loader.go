package shader

import (
	"fmt"
	"io/fs"
	"maps"
	"slices"
)

// Loader loads shader source text by slash-separated path.
type Loader interface {
	Load(path string) (string, error)
}

// FSLoader loads shader sources from an [fs.FS].
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a new [FSLoader] rooted at fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// Load implements [Loader].
func (l *FSLoader) Load(path string) (string, error) {
	b, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return "", fmt.Errorf("read shader: %w", err)
	}

	return string(b), nil
}

// MapLoader serves shader sources from memory, keyed by path.
type MapLoader map[string]string

// Load implements [Loader].
func (m MapLoader) Load(path string) (string, error) {
	src, ok := m[path]
	if !ok {
		return "", &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	return src, nil
}

// Paths returns the loader's paths in sorted order.
func (m MapLoader) Paths() []string {
	return slices.Sorted(maps.Keys(m))
}
