// Package graph builds the module dependency graph from a catalog, reusing
// cached analysis for unchanged files.
package graph

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Request describes one build.
type Request struct {
	// Files is the catalog, sorted by path.
	Files []domain.SourceFile
	// Snapshot is the previous build's cache. It may be nil.
	Snapshot *domain.CacheSnapshot
	// Dialect parses and resolves declarations.
	Dialect ports.Dialect
	// Parser names the dialect parser. Empty selects the dialect default.
	Parser      string
	Roots       []string
	LookupPaths []string
	Workers     int
	// Rebuild ignores Snapshot entirely.
	Rebuild bool
}

// Result is the unsealed graph plus the snapshot to persist.
type Result struct {
	Graph       *domain.Graph
	Snapshot    *domain.CacheSnapshot
	Diagnostics []domain.Diagnostic
	Stats       domain.BuildStats
}

// Builder turns a catalog into a dependency graph.
type Builder struct {
	catalog ports.Catalog
	now     func() time.Time
}

// NewBuilder creates a Builder that reads file content through catalog.
func NewBuilder(catalog ports.Catalog) *Builder {
	return &Builder{catalog: catalog, now: time.Now}
}

type outcome int

const (
	outcomeParsed outcome = iota
	outcomeReused
	outcomeReresolved
	outcomeDegraded
)

// analysis is the per-file result of the parallel phase.
type analysis struct {
	outcome outcome
	entry   domain.CacheEntry
	// keep reports whether entry goes into the next snapshot.
	keep  bool
	diags []domain.Diagnostic
}

// Build analyzes every file and assembles the graph. Parsing runs in a bounded
// worker pool; only the merge into the graph is serialized. A file that fails
// to parse keeps its cached declarations if it has any and otherwise gets no
// outgoing edges.
func (b *Builder) Build(ctx context.Context, req Request) (*Result, error) {
	defaults := req.Dialect.Defaults()
	parserName := req.Parser
	if parserName == "" {
		parserName = defaults.Parser
	}
	parser, err := req.Dialect.Parser(parserName)
	if err != nil {
		return nil, err
	}

	search := req.Dialect.SearchPaths(req.Roots, req.LookupPaths)
	settingsKey := key(append([]string{
		strconv.Itoa(domain.CacheVersion), req.Dialect.Name(), parserName,
	}, search...)...)
	paths := make([]string, len(req.Files))
	for i, f := range req.Files {
		paths[i] = f.Path
	}
	catalogKey := key(paths...)

	prev := req.Snapshot
	if req.Rebuild || prev == nil || prev.SettingsKey != settingsKey {
		prev = nil
	}
	edgesValid := prev != nil && prev.CatalogKey == catalogKey

	resolver := req.Dialect.NewResolver(domain.NewPathSet(req.Files), search)
	results := make([]analysis, len(req.Files))

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range req.Files {
		g.Go(func() error {
			res, err := b.analyze(gctx, f, prev, edgesValid, parser, resolver)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return b.merge(req.Files, results, settingsKey, catalogKey)
}

func (b *Builder) analyze(
	ctx context.Context,
	f domain.SourceFile,
	prev *domain.CacheSnapshot,
	edgesValid bool,
	parser ports.ImportParser,
	resolver ports.Resolver,
) (analysis, error) {
	if err := ctx.Err(); err != nil {
		return analysis{}, err
	}
	cached, hasCached := prev.Lookup(f.Path)

	if hasCached && cached.Fingerprint == f.Fingerprint {
		if edgesValid {
			return analysis{outcome: outcomeReused, entry: cached, keep: true}, nil
		}
		entry := domain.CacheEntry{Path: f.Path, Fingerprint: f.Fingerprint, Declarations: cached.Declarations}
		diags := resolve(&entry, resolver)
		return analysis{outcome: outcomeReresolved, entry: entry, keep: true, diags: diags}, nil
	}

	content, fingerprint, err := b.catalog.ReadFile(f.Path)
	var decls []string
	if err == nil {
		decls, err = parser.Parse(ctx, f.Path, content)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return analysis{}, ctxErr
		}
		return degrade(f, cached, hasCached, err, resolver), nil
	}

	entry := domain.CacheEntry{Path: f.Path, Fingerprint: fingerprint, Declarations: decls}
	diags := resolve(&entry, resolver)
	return analysis{outcome: outcomeParsed, entry: entry, keep: true, diags: diags}, nil
}

// degrade keeps the previous declarations of a file that could not be parsed.
// The previous entry is persisted unchanged so the file is parsed again next run.
func degrade(
	f domain.SourceFile, cached domain.CacheEntry, hasCached bool, cause error, resolver ports.Resolver,
) analysis {
	msg := "no outgoing edges: " + cause.Error()
	entry := domain.CacheEntry{Path: f.Path, Fingerprint: f.Fingerprint}
	if hasCached {
		msg = "keeping previous edges: " + cause.Error()
		entry.Declarations = cached.Declarations
	}
	diags := []domain.Diagnostic{{Kind: domain.DiagParseDegradation, Path: f.Path, Message: msg}}
	diags = append(diags, resolve(&entry, resolver)...)

	res := analysis{outcome: outcomeDegraded, entry: entry, diags: diags}
	if hasCached {
		res.keep = true
		res.entry.Fingerprint = cached.Fingerprint
	}
	return res
}

// resolve fills entry.Edges from entry.Declarations and reports the
// declarations that point outside the catalog.
func resolve(entry *domain.CacheEntry, resolver ports.Resolver) []domain.Diagnostic {
	var diags []domain.Diagnostic
	entry.Edges = nil
	for _, decl := range entry.Declarations {
		target, ok := resolver.Resolve(entry.Path, decl)
		if !ok {
			diags = append(diags, domain.Diagnostic{
				Kind:    domain.DiagUnresolvedImport,
				Path:    entry.Path,
				Message: fmt.Sprintf("%q does not resolve to a catalogued module", decl),
			})
			continue
		}
		if target == entry.Path || slices.Contains(entry.Edges, target) {
			continue
		}
		entry.Edges = append(entry.Edges, target)
	}
	slices.Sort(entry.Edges)
	return diags
}

// merge assembles the graph and the next snapshot. It runs on one goroutine.
func (b *Builder) merge(
	files []domain.SourceFile, results []analysis, settingsKey, catalogKey string,
) (*Result, error) {
	now := b.now()
	g := domain.NewGraph()
	snapshot := domain.NewCacheSnapshot()
	snapshot.SettingsKey = settingsKey
	snapshot.CatalogKey = catalogKey

	res := &Result{Graph: g, Snapshot: snapshot}
	res.Stats.Files = len(files)

	for _, f := range files {
		if _, err := g.AddModule(domain.Module{
			Path:        f.Path,
			Root:        f.Root,
			Fingerprint: f.Fingerprint,
			ComputedAt:  now,
		}); err != nil {
			return nil, err
		}
	}

	for i, a := range results {
		from := i
		for _, target := range a.entry.Edges {
			to, ok := g.Lookup(target)
			if !ok {
				continue
			}
			if err := g.AddEdge(from, to); err != nil {
				return nil, zerr.With(err, "path", files[i].Path)
			}
		}
		if a.keep {
			snapshot.Entries[a.entry.Path] = a.entry
		}
		res.Diagnostics = append(res.Diagnostics, a.diags...)

		switch a.outcome {
		case outcomeParsed:
			res.Stats.Parsed++
		case outcomeReused:
			res.Stats.Reused++
		case outcomeReresolved:
			res.Stats.Reresolved++
		case outcomeDegraded:
			res.Stats.Degraded++
		}
	}
	res.Stats.Edges = g.EdgeCount()

	for _, cycle := range g.Cycles() {
		res.Diagnostics = append(res.Diagnostics, domain.Diagnostic{
			Kind:    domain.DiagCycle,
			Path:    cycle[0],
			Message: "dependency cycle between " + strings.Join(cycle, ", "),
		})
	}
	return res, nil
}

// key fingerprints an ordered list of strings.
func key(parts ...string) string {
	h := xxhash.New()
	for _, p := range parts {
		_, _ = h.WriteString(p)
		_, _ = h.WriteString("\x00")
	}
	return domain.Fingerprint(h.Sum64()).String()
}
