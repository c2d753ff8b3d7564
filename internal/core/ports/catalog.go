package ports

import (
	"context"

	"go.trai.ch/impact/internal/core/domain"
)

// CatalogRequest describes which files to enumerate.
type CatalogRequest struct {
	Roots    []string
	Ignores  []string
	Suffixes []string
	Workers  int
}

// Catalog enumerates and fingerprints the source files under a set of roots.
//
//go:generate mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type Catalog interface {
	// Enumerate walks every root and returns the matching files sorted by path.
	// A missing or unreadable root is a fatal error; an unreadable file is
	// skipped and reported as a diagnostic.
	Enumerate(ctx context.Context, req CatalogRequest) ([]domain.SourceFile, []domain.Diagnostic, error)
	// ReadFile returns the content of a catalogued file and the fingerprint of
	// exactly those bytes.
	ReadFile(path string) ([]byte, domain.Fingerprint, error)
}
