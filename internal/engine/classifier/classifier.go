// Package classifier labels modules as tests or sources from their paths.
package classifier

import (
	"strings"

	"go.trai.ch/impact/internal/core/domain"
)

// Classifier decides whether a path is a test from directory names and
// file name patterns.
type Classifier struct {
	dirs     map[string]struct{}
	patterns domain.PatternSet
}

// New creates a Classifier. A path is a test when one of its directories is
// named like an entry of testDirs, or when its name matches one of testPatterns.
func New(testDirs, testPatterns []string) (*Classifier, error) {
	patterns, err := domain.CompilePatterns(testPatterns)
	if err != nil {
		return nil, err
	}
	dirs := make(map[string]struct{}, len(testDirs))
	for _, d := range testDirs {
		if d = strings.Trim(d, "/"); d != "" {
			dirs[d] = struct{}{}
		}
	}
	return &Classifier{dirs: dirs, patterns: patterns}, nil
}

// Classify labels the file at path, found under root.
func (c *Classifier) Classify(root, path string) domain.Category {
	rel := domain.RelPath(root, path)
	segments := strings.Split(rel, "/")
	for _, dir := range segments[:len(segments)-1] {
		if _, ok := c.dirs[dir]; ok {
			return domain.CategoryTest
		}
	}
	if c.patterns.Match(rel) {
		return domain.CategoryTest
	}
	return domain.CategorySource
}

// ClassifyGraph labels every module of an unsealed graph and returns the
// number of tests.
func (c *Classifier) ClassifyGraph(g *domain.Graph) (int, error) {
	tests := 0
	for m := range g.Modules() {
		category := c.Classify(m.Root, m.Path)
		if category == domain.CategoryTest {
			tests++
		}
		if err := g.SetCategory(m.ID, category); err != nil {
			return 0, err
		}
	}
	return tests, nil
}
