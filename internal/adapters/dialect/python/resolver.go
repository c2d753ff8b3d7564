package python

import (
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/impact/internal/core/domain"
)

const memoSize = 4096

type resolution struct {
	path string
	ok   bool
}

// Resolver maps canonical import declarations to catalogued files.
//
// A declaration is a dotted module path with as many leading dots as the
// relative import level: "a.b", ".c", "..a.b" or "." for "from . import *".
// Each candidate location is tried as a package (<p>/__init__.py), then as a
// module (<p>.py), then its parent is tried the same way, since "from a import
// b" may name an object defined in a rather than a submodule.
type Resolver struct {
	files  domain.PathSet
	search []string
	memo   *lru.Cache[string, resolution]
}

// NewResolver creates a Resolver over files. Absolute declarations are looked
// up under each search path in order.
func NewResolver(files domain.PathSet, searchPaths []string) *Resolver {
	memo, _ := lru.New[string, resolution](memoSize)
	return &Resolver{files: files, search: searchPaths, memo: memo}
}

// Resolve returns the file the declaration made by importer refers to.
func (r *Resolver) Resolve(importer, declaration string) (string, bool) {
	level, segments, valid := split(declaration)
	if !valid {
		return "", false
	}

	bases := r.search
	key := declaration
	if level > 0 {
		base := filepath.Dir(importer)
		for range level - 1 {
			base = filepath.Dir(base)
		}
		bases = []string{base}
		key = base + "\x00" + declaration
	}

	if res, ok := r.memo.Get(key); ok {
		return res.path, res.ok
	}

	res := resolution{}
	for _, base := range bases {
		if p, ok := r.lookup(base, segments, level > 0); ok {
			res = resolution{path: p, ok: true}
			break
		}
	}
	r.memo.Add(key, res)
	return res.path, res.ok
}

func (r *Resolver) lookup(base string, segments []string, relative bool) (string, bool) {
	target := filepath.Join(append([]string{base}, segments...)...)
	if p, ok := r.module(target); ok {
		return p, true
	}
	if len(segments) > 1 || (relative && len(segments) == 1) {
		return r.module(filepath.Dir(target))
	}
	return "", false
}

func (r *Resolver) module(target string) (string, bool) {
	if p := filepath.Join(target, initFile); r.files.Has(p) {
		return p, true
	}
	if p := target + extension; r.files.Has(p) {
		return p, true
	}
	return "", false
}

// split returns the relative level and the module segments of a declaration.
func split(declaration string) (int, []string, bool) {
	rest := strings.TrimLeft(declaration, ".")
	level := len(declaration) - len(rest)
	if rest == "" {
		return level, nil, level > 0
	}
	segments := strings.Split(rest, ".")
	for _, s := range segments {
		if s == "" {
			return 0, nil, false
		}
	}
	return level, segments, true
}
