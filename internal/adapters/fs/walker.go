// Package fs provides file system adapters for cataloging and fingerprinting source files.
package fs

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/impact/internal/core/domain"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file under root that carries one of the suffixes,
// skipping hidden directories and entries matched by ignores.
// A non-nil error is yielded together with the path of an entry that could not
// be read; walking continues after it.
func (w *Walker) WalkFiles(ctx context.Context, root string, ignores domain.PatternSet, suffixes []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				if path == root {
					return err
				}
				if !yield(path, err) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if path == root {
				return nil
			}

			if skip := w.shouldSkip(root, path, d, ignores); skip {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !hasSuffix(d.Name(), suffixes) {
				return nil
			}
			if !w.isFile(path, d) {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkip checks the hidden-directory rule and the ignore patterns.
func (w *Walker) shouldSkip(root, path string, d fs.DirEntry, ignores domain.PatternSet) bool {
	name := d.Name()
	if d.IsDir() && strings.HasPrefix(name, ".") {
		return true
	}
	if ignores.Empty() {
		return false
	}
	return ignores.Match(domain.RelPath(root, path))
}

// isFile reports whether the entry is a regular file, following symlinks.
func (w *Walker) isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func hasSuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
