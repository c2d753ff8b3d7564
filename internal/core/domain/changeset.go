package domain

// Change is one entry of a ChangeSet.
type Change struct {
	// Path is the normalized absolute path supplied by the caller.
	Path string
	// ModuleID is the graph node the path maps to. Only valid when Resolved is true.
	ModuleID int
	// Resolved reports whether the path maps to a catalogued module.
	Resolved bool
}

// ChangeSet is the ordered list of changed paths, each mapped to a module when possible.
type ChangeSet struct {
	Changes []Change
}

// NewChangeSet normalizes paths against base and maps each onto g.
// Paths outside the catalog or of deleted files are kept as unresolved.
// Duplicate paths are collapsed, keeping the first occurrence.
func NewChangeSet(g *Graph, base string, paths []string) ChangeSet {
	seen := make(map[string]struct{}, len(paths))
	changes := make([]Change, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		norm := NormalizePath(base, p)
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}

		c := Change{Path: norm}
		if id, ok := g.Lookup(norm); ok {
			c.ModuleID = id
			c.Resolved = true
		}
		changes = append(changes, c)
	}
	return ChangeSet{Changes: changes}
}

// Empty reports whether the change set has no entries.
func (cs ChangeSet) Empty() bool {
	return len(cs.Changes) == 0
}

// Paths returns the normalized paths in input order.
func (cs ChangeSet) Paths() []string {
	out := make([]string, 0, len(cs.Changes))
	for _, c := range cs.Changes {
		out = append(out, c.Path)
	}
	return out
}

// Unresolved returns the paths that did not map to a module.
func (cs ChangeSet) Unresolved() []string {
	var out []string
	for _, c := range cs.Changes {
		if !c.Resolved {
			out = append(out, c.Path)
		}
	}
	return out
}

// ImpactResult is the set of selected test files.
type ImpactResult struct {
	// Tests holds absolute test paths, deduplicated and sorted.
	Tests []string `json:"tests" yaml:"tests"`
	// Fallback is set when the conservative full-suite selection was applied.
	Fallback bool `json:"fallback" yaml:"fallback"`
	// Unresolved lists changed paths that did not map to a catalogued module.
	Unresolved []string `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	// Diagnostics holds the non-fatal conditions met while selecting.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}
