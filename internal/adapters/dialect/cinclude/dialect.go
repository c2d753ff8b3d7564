// Package cinclude implements the C/C++ include dialect: quoted #include
// directives resolved against the including file's directory and then the
// include search paths.
package cinclude

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// Name is the configuration name of the dialect.
	Name = "cinclude"
	// ParserDirective selects the preprocessor directive scanner.
	ParserDirective = "directive"
)

// Dialect implements ports.Dialect for C and C++ sources.
type Dialect struct{}

var _ ports.Dialect = (*Dialect)(nil)

// New creates a new Dialect.
func New() *Dialect {
	return &Dialect{}
}

// Name returns "cinclude".
func (d *Dialect) Name() string {
	return Name
}

// Defaults returns the common C/C++ layout conventions.
func (d *Dialect) Defaults() ports.DialectDefaults {
	return ports.DialectDefaults{
		Suffixes:     []string{".c", ".h", ".cc", ".cpp", ".hpp"},
		TestPatterns: []string{"test_*", "*_test.*"},
		TestDirs:     []string{"tests", "test"},
		Parser:       ParserDirective,
	}
}

// Parser returns the directive scanner.
func (d *Dialect) Parser(name string) (ports.ImportParser, error) {
	if name == "" || name == ParserDirective {
		return &DirectiveParser{}, nil
	}
	return nil, zerr.With(zerr.With(domain.ErrUnknownParser, "dialect", Name), "parser", name)
}

// SearchPaths returns the configured include paths followed by the roots.
func (d *Dialect) SearchPaths(roots, lookupPaths []string) []string {
	out := make([]string, 0, len(lookupPaths)+len(roots))
	out = append(out, lookupPaths...)
	return append(out, roots...)
}

// NewResolver returns a Resolver over the catalogued files.
func (d *Dialect) NewResolver(files domain.PathSet, searchPaths []string) ports.Resolver {
	return &Resolver{files: files, search: searchPaths}
}

// DirectiveParser collects the targets of quoted #include directives.
// Angle-bracket includes name system headers and are skipped.
type DirectiveParser struct{}

// Parse returns the quoted include targets in source order.
func (p *DirectiveParser) Parse(ctx context.Context, path string, src []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		rest, ok := strings.CutPrefix(text, "#")
		if !ok {
			continue
		}
		rest, ok = strings.CutPrefix(strings.TrimSpace(rest), "include")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		if !strings.HasPrefix(rest, `"`) {
			continue
		}
		end := strings.IndexByte(rest[1:], '"')
		if end < 0 {
			return nil, zerr.With(zerr.With(zerr.With(domain.ErrParseFailed,
				"line", line), "reason", "unterminated include"), "path", path)
		}
		target := rest[1 : end+1]
		if _, dup := seen[target]; dup || target == "" {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to scan includes"), "path", path)
	}
	return out, nil
}

// Resolver resolves include targets to catalogued files.
type Resolver struct {
	files  domain.PathSet
	search []string
}

// Resolve looks for the target next to the including file, then under each
// search path.
func (r *Resolver) Resolve(importer, declaration string) (string, bool) {
	rel := filepath.FromSlash(declaration)
	if filepath.IsAbs(rel) {
		p := filepath.Clean(rel)
		return p, r.files.Has(p)
	}
	if p := filepath.Join(filepath.Dir(importer), rel); r.files.Has(p) {
		return p, true
	}
	for _, base := range r.search {
		if p := filepath.Join(base, rel); r.files.Has(p) {
			return p, true
		}
	}
	return "", false
}
