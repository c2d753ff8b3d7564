package ports

import (
	"context"

	"go.trai.ch/impact/internal/core/domain"
)

// ImportParser extracts the dependency declarations of one file.
type ImportParser interface {
	// Parse returns the declarations found in src, in source order.
	// Declarations are dialect-specific strings understood by the dialect's Resolver.
	Parse(ctx context.Context, path string, src []byte) ([]string, error)
}

// Resolver maps a declaration made by importer to the path of a catalogued module.
type Resolver interface {
	// Resolve returns the target path and true, or false when the declaration
	// refers to nothing inside the catalog.
	Resolve(importer, declaration string) (string, bool)
}

// DialectDefaults are the conventions a dialect applies when the configuration
// does not override them.
type DialectDefaults struct {
	Suffixes     []string
	TestPatterns []string
	TestDirs     []string
	Parser       string
}

// Dialect bundles the parsing and resolution strategy of one language.
type Dialect interface {
	// Name returns the configuration name of the dialect.
	Name() string
	// Defaults returns the dialect's default conventions.
	Defaults() DialectDefaults
	// Parser returns the named parser implementation.
	Parser(name string) (ImportParser, error)
	// SearchPaths returns the ordered directories absolute declarations are
	// looked up in, given the catalog roots and the configured lookup paths.
	SearchPaths(roots, lookupPaths []string) []string
	// NewResolver returns a resolver over the given catalog.
	NewResolver(files domain.PathSet, searchPaths []string) Resolver
}

// DialectRegistry looks up dialects by name.
//
//go:generate mockgen -source=dialect.go -destination=mocks/mock_dialect.go -package=mocks
type DialectRegistry interface {
	// Get returns the dialect registered under name.
	Get(name string) (Dialect, error)
	// Names returns the registered dialect names, sorted.
	Names() []string
}
