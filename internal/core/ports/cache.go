package ports

import (
	"context"

	"go.trai.ch/impact/internal/core/domain"
)

// GraphCache persists build results between invocations.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type GraphCache interface {
	// Load reads the snapshot at path. A missing, locked, corrupt or
	// version-mismatched cache yields an empty snapshot plus diagnostics;
	// only context cancellation is returned as an error.
	Load(ctx context.Context, path string) (*domain.CacheSnapshot, []domain.Diagnostic, error)
	// Store atomically replaces the snapshot at path.
	Store(ctx context.Context, path string, snapshot *domain.CacheSnapshot) error
	// Remove deletes the snapshot at path. A missing file is not an error.
	Remove(path string) error
}
