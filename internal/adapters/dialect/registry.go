// Package dialect registers the available language dialects.
package dialect

import (
	"slices"

	"go.trai.ch/impact/internal/adapters/dialect/cinclude"
	"go.trai.ch/impact/internal/adapters/dialect/python"
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry implements ports.DialectRegistry over a fixed set of dialects.
type Registry struct {
	dialects map[string]ports.Dialect
}

var _ ports.DialectRegistry = (*Registry)(nil)

// NewRegistry creates a Registry holding the given dialects.
func NewRegistry(dialects ...ports.Dialect) *Registry {
	r := &Registry{dialects: make(map[string]ports.Dialect, len(dialects))}
	for _, d := range dialects {
		r.dialects[d.Name()] = d
	}
	return r
}

// NewDefaultRegistry creates a Registry with every built-in dialect.
func NewDefaultRegistry() *Registry {
	return NewRegistry(python.New(), cinclude.New())
}

// Get returns the dialect registered under name.
func (r *Registry) Get(name string) (ports.Dialect, error) {
	d, ok := r.dialects[name]
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrUnknownDialect, "dialect", name), "available", r.Names())
	}
	return d, nil
}

// Names returns the registered dialect names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.dialects))
	for name := range r.dialects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
