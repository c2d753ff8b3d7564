// Package impact computes the tests affected by a change set.
package impact

import (
	"go.trai.ch/impact/internal/core/domain"
)

// Resolver walks reversed dependency edges from changed modules. It performs
// no I/O and never mutates the graph.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the tests that transitively depend on a changed module,
// including changed tests themselves. Any unresolved change selects every
// test. An empty change set selects nothing.
func (r *Resolver) Resolve(g *domain.Graph, cs domain.ChangeSet) (domain.ImpactResult, error) {
	if !g.Sealed() {
		return domain.ImpactResult{}, domain.ErrGraphNotSealed
	}
	res := domain.ImpactResult{Tests: []string{}}
	if cs.Empty() {
		return res, nil
	}

	if unresolved := cs.Unresolved(); len(unresolved) > 0 {
		res.Fallback = true
		res.Unresolved = unresolved
		for _, p := range unresolved {
			res.Diagnostics = append(res.Diagnostics, domain.Diagnostic{
				Kind:    domain.DiagUnresolvedChange,
				Path:    p,
				Message: "not a catalogued module, selecting all tests",
			})
		}
		res.Tests = r.paths(g, g.Tests())
		return res, nil
	}

	visited := r.Reach(g, cs)
	var ids []int
	for _, id := range g.Tests() {
		if visited[id] {
			ids = append(ids, id)
		}
	}
	res.Tests = r.paths(g, ids)
	return res, nil
}

// Reach marks every module reachable over reversed edges from the resolved
// changes. The returned slice is indexed by module id.
func (r *Resolver) Reach(g *domain.Graph, cs domain.ChangeSet) []bool {
	visited := make([]bool, g.Len())
	queue := make([]int, 0, len(cs.Changes))
	for _, c := range cs.Changes {
		if c.Resolved && !visited[c.ModuleID] {
			visited[c.ModuleID] = true
			queue = append(queue, c.ModuleID)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, dep := range g.Dependents(id) {
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, dep)
			}
		}
	}
	return visited
}

// paths maps test ids, already ordered by path, to their paths.
func (r *Resolver) paths(g *domain.Graph, ids []int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.Module(id).Path)
	}
	return out
}
