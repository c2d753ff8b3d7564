package app

import (
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
)

// policy holds the compiled selection globs of a configuration.
type policy struct {
	runAll domain.PatternSet
	always domain.PatternSet
	ignore domain.PatternSet
}

func newPolicy(cfg *domain.Config) (policy, error) {
	runAll, err := domain.CompilePatterns(cfg.RunAllOnChange)
	if err != nil {
		return policy{}, err
	}
	always, err := domain.CompilePatterns(cfg.AlwaysRun)
	if err != nil {
		return policy{}, err
	}
	ignore, err := domain.CompilePatterns(cfg.TestIgnores)
	if err != nil {
		return policy{}, err
	}
	return policy{runAll: runAll, always: always, ignore: ignore}, nil
}

// apply turns the resolver's result into the final selection:
// impacted tests minus ignored ones, plus the always-run tests.
// An empty change set still selects nothing.
func (p policy) apply(log ports.Logger, g *domain.Graph, cs domain.ChangeSet, res domain.ImpactResult) domain.ImpactResult {
	if cs.Empty() {
		return res
	}

	selectAll := res.Fallback
	if !selectAll {
		if path, ok := p.triggersRunAll(g, cs); ok {
			log.Info("run-all-on-change matched " + path + ", selecting all tests")
			selectAll = true
			res.Fallback = true
		}
	}

	impacted := make(map[string]struct{}, len(res.Tests))
	for _, t := range res.Tests {
		impacted[t] = struct{}{}
	}

	tests := make([]string, 0, len(res.Tests))
	for _, id := range g.Tests() {
		m := g.Module(id)
		rel := m.Rel()
		_, hit := impacted[m.Path]
		hit = hit || selectAll
		if p.always.Match(rel) || (hit && !p.ignore.Match(rel)) {
			tests = append(tests, m.Path)
		}
	}
	res.Tests = tests
	return res
}

// triggersRunAll reports the first changed module whose root-relative path
// matches a run-all-on-change glob. Unresolved changes already select
// everything, so only resolved ones are checked.
func (p policy) triggersRunAll(g *domain.Graph, cs domain.ChangeSet) (string, bool) {
	if p.runAll.Empty() {
		return "", false
	}
	for _, c := range cs.Changes {
		if c.Resolved && p.runAll.Match(g.Module(c.ModuleID).Rel()) {
			return c.Path, true
		}
	}
	return "", false
}
