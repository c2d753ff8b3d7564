// Package cache persists the per-module analysis of a build between runs.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.GraphCache using a single JSON file guarded by an
// advisory lock file next to it.
type Store struct{}

var _ ports.GraphCache = (*Store)(nil)

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the snapshot at path. Every failure other than cancellation
// degrades to an empty snapshot.
func (s *Store) Load(ctx context.Context, path string) (*domain.CacheSnapshot, []domain.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	path = filepath.Clean(path)

	unlock, err := acquire(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// The cache directory does not exist yet.
		return domain.NewCacheSnapshot(), nil, nil
	case err != nil:
		return domain.NewCacheSnapshot(), []domain.Diagnostic{unavailable(path, err)}, nil
	}
	defer unlock()

	data, err := os.ReadFile(path) //nolint:gosec // Path is the configured cache file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewCacheSnapshot(), nil, nil
		}
		return domain.NewCacheSnapshot(), []domain.Diagnostic{corrupt(path, err.Error())}, nil
	}
	if len(data) == 0 {
		return domain.NewCacheSnapshot(), nil, nil
	}

	snapshot, err := decode(data)
	if err != nil {
		return domain.NewCacheSnapshot(), []domain.Diagnostic{corrupt(path, err.Error())}, nil
	}
	return snapshot, nil, nil
}

// Store atomically replaces the snapshot at path. A cancelled context aborts
// before the rename, so the previous file stays intact.
func (s *Store) Store(ctx context.Context, path string, snapshot *domain.CacheSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", dir)
	}

	unlock, err := acquire(path)
	if err != nil {
		return zerr.With(err, "path", path)
	}
	defer unlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache")
	}

	tmpFile, err := os.CreateTemp(dir, "graph-*.json.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp cache file")
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, "failed to write cache file")
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, "failed to sync cache file")
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp cache file")
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to chmod cache file")
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to rename temp cache file"), "path", path)
	}
	return nil
}

// Remove deletes the snapshot at path.
func (s *Store) Remove(path string) error {
	path = filepath.Clean(path)
	unlock, err := acquire(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return zerr.With(err, "path", path)
	}
	defer unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove cache file"), "path", path)
	}
	return nil
}

// decode checks the version tag before decoding the rest of the layout.
func decode(data []byte) (*domain.CacheSnapshot, error) {
	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, zerr.With(domain.ErrCacheCorrupt, "cause", err.Error())
	}
	if header.Version != domain.CacheVersion {
		return nil, zerr.With(zerr.With(domain.ErrCacheVersionMismatch,
			"found", header.Version), "expected", domain.CacheVersion)
	}

	snapshot := domain.NewCacheSnapshot()
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, zerr.With(domain.ErrCacheCorrupt, "cause", err.Error())
	}
	if snapshot.Entries == nil {
		snapshot.Entries = make(map[string]domain.CacheEntry)
	}
	return snapshot, nil
}

// acquire takes the advisory lock of the cache at path and returns its release function.
func acquire(path string) (func(), error) {
	f, err := os.OpenFile(domain.LockPath(path), os.O_CREATE|os.O_RDWR, domain.FilePerm) //nolint:gosec // Lock path derives from the cache path
	if err != nil {
		return nil, err
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() {
		_ = unlockFile(f)
		_ = f.Close()
	}, nil
}

func corrupt(path, msg string) domain.Diagnostic {
	return domain.Diagnostic{
		Kind:    domain.DiagCacheCorruption,
		Path:    path,
		Message: fmt.Sprintf("discarding cache, full rebuild: %s", msg),
	}
}

func unavailable(path string, err error) domain.Diagnostic {
	return domain.Diagnostic{
		Kind:    domain.DiagCacheUnavailable,
		Path:    path,
		Message: err.Error(),
	}
}
