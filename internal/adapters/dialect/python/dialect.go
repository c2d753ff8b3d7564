// Package python implements the Python import dialect: a parser for import
// statements and the package/module lookup rules of the Python import system.
package python

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// Name is the configuration name of the dialect.
	Name = "python"
	// ParserLexical selects the pure Go statement scanner.
	ParserLexical = "lexical"
	// ParserTreeSitter selects the tree-sitter grammar. It requires cgo.
	ParserTreeSitter = "treesitter"

	initFile  = "__init__.py"
	extension = ".py"
)

// Dialect implements ports.Dialect for Python sources.
type Dialect struct {
	pythonPath []string
}

var _ ports.Dialect = (*Dialect)(nil)

// New creates a Dialect that honors the PYTHONPATH of the current process.
func New() *Dialect {
	return NewWithPythonPath(filepath.SplitList(os.Getenv("PYTHONPATH")))
}

// NewWithPythonPath creates a Dialect with explicit PYTHONPATH entries.
func NewWithPythonPath(entries []string) *Dialect {
	d := &Dialect{}
	for _, e := range entries {
		if e == "" {
			continue
		}
		if abs, err := filepath.Abs(e); err == nil {
			d.pythonPath = append(d.pythonPath, abs)
		}
	}
	return d
}

// Name returns "python".
func (d *Dialect) Name() string {
	return Name
}

// Defaults returns the pytest discovery conventions.
func (d *Dialect) Defaults() ports.DialectDefaults {
	return ports.DialectDefaults{
		Suffixes:     []string{extension},
		TestPatterns: []string{"test_*.py", "*_test.py"},
		Parser:       ParserLexical,
	}
}

// Parser returns the named parser.
func (d *Dialect) Parser(name string) (ports.ImportParser, error) {
	switch name {
	case "", ParserLexical:
		return NewLexicalParser(), nil
	case ParserTreeSitter:
		return newTreeSitterParser()
	default:
		return nil, zerr.With(zerr.With(domain.ErrUnknownParser, "dialect", Name), "parser", name)
	}
}

// SearchPaths mirrors the interpreter's sys.path for project code: the roots,
// then the configured lookup paths, then PYTHONPATH entries located inside a root.
// Duplicates keep their first position.
func (d *Dialect) SearchPaths(roots, lookupPaths []string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, r := range roots {
		add(r)
	}
	for _, p := range lookupPaths {
		add(p)
	}
	for _, p := range d.pythonPath {
		if insideAny(p, roots) {
			add(p)
		}
	}
	return out
}

// NewResolver returns a Resolver over the catalogued files.
func (d *Dialect) NewResolver(files domain.PathSet, searchPaths []string) ports.Resolver {
	return NewResolver(files, searchPaths)
}

func insideAny(path string, roots []string) bool {
	for _, r := range roots {
		if path == r || strings.HasPrefix(path, r+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
