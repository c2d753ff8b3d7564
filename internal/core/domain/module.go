// Package domain contains the core models of the change-impact engine: modules,
// the dependency graph, change sets and selection results.
package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

// Category labels a module as test or source.
type Category uint8

const (
	// CategorySource is a module that is not a test.
	CategorySource Category = iota
	// CategoryTest is a module that is a test file.
	CategoryTest
)

// String returns the lowercase name of the category.
func (c Category) String() string {
	if c == CategoryTest {
		return "test"
	}
	return "source"
}

// Fingerprint is a content hash of a file's bytes.
type Fingerprint uint64

// String renders the fingerprint as 16 hex digits.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// SourceFile is a catalogued file before it becomes a graph node.
type SourceFile struct {
	// Path is the absolute, cleaned path of the file.
	Path string
	// Root is the catalog root the file was found under.
	Root string
	// Fingerprint is the xxhash of the file contents.
	Fingerprint Fingerprint
}

// Rel returns the slash-separated path of the file relative to its root.
func (f SourceFile) Rel() string {
	return RelPath(f.Root, f.Path)
}

// Module is a node of the dependency graph.
type Module struct {
	ID          int
	Path        string
	Root        string
	Category    Category
	Fingerprint Fingerprint
	ComputedAt  time.Time
}

// IsTest reports whether the module is classified as a test.
func (m Module) IsTest() bool {
	return m.Category == CategoryTest
}

// Rel returns the slash-separated path of the module relative to its root.
func (m Module) Rel() string {
	return RelPath(m.Root, m.Path)
}

// NormalizePath returns the absolute, cleaned form of path.
// Relative paths are resolved against base.
func NormalizePath(base, path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	return filepath.Clean(path)
}

// RelPath returns path relative to root using forward slashes.
// It falls back to the slash-converted path when no relative form exists.
func RelPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// PathSet is a set of absolute module paths.
type PathSet map[string]struct{}

// NewPathSet builds a PathSet from catalogued files.
func NewPathSet(files []SourceFile) PathSet {
	s := make(PathSet, len(files))
	for _, f := range files {
		s[f.Path] = struct{}{}
	}
	return s
}

// Has reports whether path is in the set.
func (s PathSet) Has(path string) bool {
	_, ok := s[path]
	return ok
}
