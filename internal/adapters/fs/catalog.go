package fs

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Catalog enumerates source files under a set of roots and fingerprints them.
type Catalog struct {
	walker *Walker
	hasher *Hasher
}

var _ ports.Catalog = (*Catalog)(nil)

// NewCatalog creates a Catalog from a walker and a hasher.
func NewCatalog(walker *Walker, hasher *Hasher) *Catalog {
	return &Catalog{walker: walker, hasher: hasher}
}

// Enumerate walks every root and returns the matching files sorted by path.
func (c *Catalog) Enumerate(
	ctx context.Context, req ports.CatalogRequest,
) ([]domain.SourceFile, []domain.Diagnostic, error) {
	if len(req.Roots) == 0 {
		return nil, nil, domain.ErrNoRoots
	}
	if len(req.Suffixes) == 0 {
		return nil, nil, domain.ErrNoSuffixes
	}
	ignores, err := domain.CompilePatterns(req.Ignores)
	if err != nil {
		return nil, nil, err
	}
	for _, root := range req.Roots {
		if err := checkRoot(root); err != nil {
			return nil, nil, err
		}
	}

	var (
		mu    sync.Mutex
		files []domain.SourceFile
		diags []domain.Diagnostic
		seen  = make(map[string]struct{})
	)

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, root := range req.Roots {
		for path, walkErr := range c.walker.WalkFiles(gctx, root, ignores, req.Suffixes) {
			if walkErr != nil {
				mu.Lock()
				diags = append(diags, domain.Diagnostic{
					Kind:    domain.DiagFileSkipped,
					Path:    path,
					Message: walkErr.Error(),
				})
				mu.Unlock()
				continue
			}
			// Overlapping roots yield the same file twice; the first root wins.
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}

			g.Go(func() error {
				fp, err := c.hasher.Fingerprint(path)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					diags = append(diags, domain.Diagnostic{
						Kind:    domain.DiagFileSkipped,
						Path:    path,
						Message: err.Error(),
					})
					return nil
				}
				files = append(files, domain.SourceFile{Path: path, Root: root, Fingerprint: fp})
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	slices.SortFunc(files, func(a, b domain.SourceFile) int {
		return strings.Compare(a.Path, b.Path)
	})
	slices.SortFunc(diags, func(a, b domain.Diagnostic) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files, diags, nil
}

// ReadFile returns the content of path and its fingerprint.
func (c *Catalog) ReadFile(path string) ([]byte, domain.Fingerprint, error) {
	content, err := os.ReadFile(path) //nolint:gosec // Path comes from the catalog
	if err != nil {
		return nil, 0, zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}
	return content, c.hasher.FingerprintBytes(content), nil
}

// checkRoot verifies that root is a listable directory.
func checkRoot(root string) error {
	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return zerr.With(domain.ErrRootNotFound, "root", root)
	case err != nil:
		return zerr.With(zerr.With(domain.ErrRootUnreadable, "root", root), "cause", err.Error())
	case !info.IsDir():
		return zerr.With(domain.ErrRootNotDirectory, "root", root)
	}

	dir, err := os.Open(root) //nolint:gosec // Root is configured by the user
	if err != nil {
		return zerr.With(zerr.With(domain.ErrRootUnreadable, "root", root), "cause", err.Error())
	}
	defer dir.Close() //nolint:errcheck // Read-only handle
	if _, err := dir.ReadDir(1); err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(zerr.With(domain.ErrRootUnreadable, "root", root), "cause", err.Error())
	}
	return nil
}
