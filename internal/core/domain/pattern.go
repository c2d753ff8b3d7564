package domain

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
	"go.trai.ch/zerr"
)

// PatternSet is a compiled list of slash-separated glob patterns.
// A pattern without a slash matches the base name; a pattern with a slash
// matches the whole root-relative path, and "**" crosses directories.
type PatternSet struct {
	base []glob.Glob
	full []glob.Glob
}

// CompilePatterns compiles patterns into a PatternSet.
func CompilePatterns(patterns []string) (PatternSet, error) {
	var s PatternSet
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		anchored := strings.Contains(strings.TrimSuffix(p, "/"), "/")
		p = strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/")
		g, err := glob.Compile(p, '/')
		if err != nil {
			return PatternSet{}, zerr.With(ErrInvalidPattern, "pattern", p)
		}
		if anchored {
			s.full = append(s.full, g)
		} else {
			s.base = append(s.base, g)
		}
	}
	return s, nil
}

// Empty reports whether the set has no patterns.
func (s PatternSet) Empty() bool {
	return len(s.base) == 0 && len(s.full) == 0
}

// Match reports whether the slash-separated relative path matches any pattern.
func (s PatternSet) Match(rel string) bool {
	if len(s.base) > 0 {
		name := path.Base(rel)
		for _, g := range s.base {
			if g.Match(name) {
				return true
			}
		}
	}
	for _, g := range s.full {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
