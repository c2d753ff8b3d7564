// Package app implements the selection service of impact.
package app

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/impact/internal/engine/classifier"
	"go.trai.ch/impact/internal/engine/graph"
	"go.trai.ch/impact/internal/engine/impact"
	"go.trai.ch/zerr"
)

// App orchestrates cataloging, graph building, caching and impact resolution.
type App struct {
	catalog  ports.Catalog
	cache    ports.GraphCache
	dialects ports.DialectRegistry
	builder  *graph.Builder
	resolver *impact.Resolver
	logger   ports.Logger
	tracer   ports.Tracer
	metrics  ports.Metrics
	watcher  ports.Watcher
	debounce time.Duration
	now      func() time.Time
}

// New creates a new App instance.
func New(
	catalog ports.Catalog,
	cache ports.GraphCache,
	dialects ports.DialectRegistry,
	builder *graph.Builder,
	resolver *impact.Resolver,
	log ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
	watcher ports.Watcher,
) *App {
	return &App{
		catalog:  catalog,
		cache:    cache,
		dialects: dialects,
		builder:  builder,
		resolver: resolver,
		logger:   log,
		tracer:   tracer,
		metrics:  metrics,
		watcher:  watcher,
		debounce: defaultDebounce,
		now:      time.Now,
	}
}

// WithDebounce sets the quiet period Watch waits for before selecting.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// SelectRequest is the input of one selection.
type SelectRequest struct {
	// Config is the explicit configuration. It is not modified.
	Config *domain.Config
	// Changed are the changed paths, absolute or relative to Base.
	Changed []string
	// Base resolves relative paths. Empty means the working directory.
	Base string
}

// Select returns the tests affected by the changed paths. Only configuration
// errors and unreadable roots fail the call; every other problem is reported
// in the result's diagnostics and widens the selection.
func (a *App) Select(ctx context.Context, req SelectRequest) (domain.ImpactResult, error) {
	start := a.now()
	log := a.logger.With("run_id", uuid.NewString())

	ctx, span := a.tracer.Start(ctx, "select")
	defer span.End()

	res, stats, cfg, err := a.selectTests(ctx, log, req)
	if err != nil {
		span.RecordError(err)
		return domain.ImpactResult{}, err
	}

	stats.Duration = a.now().Sub(start)
	span.SetAttribute("impact.selected", stats.Selected)
	span.SetAttribute("impact.fallback", stats.Fallback)
	a.record(log, cfg.MetricsFile, stats)

	log.Info(fmt.Sprintf("selected %d of %d tests from %d changed paths",
		stats.Selected, stats.Build.Tests, stats.Changed))
	return res, nil
}

func (a *App) selectTests(
	ctx context.Context, log ports.Logger, req SelectRequest,
) (domain.ImpactResult, domain.SelectionStats, *domain.Config, error) {
	var stats domain.SelectionStats

	base, err := resolveBase(req.Base)
	if err != nil {
		return domain.ImpactResult{}, stats, nil, err
	}
	cfg, dialect, err := a.configure(req.Config, base)
	if err != nil {
		return domain.ImpactResult{}, stats, nil, err
	}
	pol, err := newPolicy(cfg)
	if err != nil {
		return domain.ImpactResult{}, stats, nil, err
	}

	b, err := a.build(ctx, log, cfg, dialect)
	if err != nil {
		return domain.ImpactResult{}, stats, nil, err
	}

	_, span := a.tracer.Start(ctx, "resolve")
	cs := domain.NewChangeSet(b.graph, base, req.Changed)
	res, err := a.resolver.Resolve(b.graph, cs)
	if err != nil {
		span.RecordError(err)
		span.End()
		return domain.ImpactResult{}, stats, nil, zerr.Wrap(err, "failed to resolve impact")
	}
	res = pol.apply(log, b.graph, cs, res)
	span.End()

	res.Diagnostics = a.report(log, append(b.diags, res.Diagnostics...))

	stats.Build = b.stats
	stats.Changed = len(cs.Changes)
	stats.Selected = len(res.Tests)
	stats.Fallback = res.Fallback
	stats.Diagnostics = len(res.Diagnostics)
	return res, stats, cfg, nil
}

// record feeds the metrics recorder and writes the textfile when configured.
func (a *App) record(log ports.Logger, metricsFile string, stats domain.SelectionStats) {
	a.metrics.Observe(stats)
	if metricsFile == "" {
		return
	}
	if err := a.metrics.WriteFile(metricsFile); err != nil {
		log.Warn(fmt.Sprintf("failed to write metrics: %v", err))
	}
}

// report logs every diagnostic and returns the user-facing ones.
func (a *App) report(log ports.Logger, diags []domain.Diagnostic) []domain.Diagnostic {
	var out []domain.Diagnostic
	for _, d := range diags {
		if !d.Degrading() {
			log.Debug(d.String())
			continue
		}
		log.Warn(d.String())
		out = append(out, d)
	}
	return out
}

// GraphRequest is the input of a graph rendering.
type GraphRequest struct {
	Config *domain.Config
	// Changed limits the output to the modules impacted by these paths.
	// An empty list renders the whole graph.
	Changed []string
	Base    string
}

// Graph renders the dependency graph in DOT format.
func (a *App) Graph(ctx context.Context, req GraphRequest) ([]byte, error) {
	log := a.logger.With("run_id", uuid.NewString())
	ctx, span := a.tracer.Start(ctx, "graph")
	defer span.End()

	base, err := resolveBase(req.Base)
	if err != nil {
		return nil, err
	}
	cfg, dialect, err := a.configure(req.Config, base)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	b, err := a.build(ctx, log, cfg, dialect)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	a.report(log, b.diags)

	var keep func(id int) bool
	if len(req.Changed) > 0 {
		reached := a.resolver.Reach(b.graph, domain.NewChangeSet(b.graph, base, req.Changed))
		keep = func(id int) bool { return reached[id] }
	}
	return b.graph.DOT("impact", keep)
}

// Clean removes the graph cache.
func (a *App) Clean(_ context.Context, cfg *domain.Config) error {
	if cfg == nil {
		return domain.ErrNoRoots
	}
	base, err := resolveBase("")
	if err != nil {
		return err
	}
	c := clone(cfg)
	c.Normalize(base)
	if c.CacheFile == "" {
		return domain.ErrNoRoots
	}
	if err := a.cache.Remove(c.CacheFile); err != nil {
		return zerr.Wrap(err, "failed to remove cache")
	}
	a.logger.Info("removed " + c.CacheFile)
	return nil
}

// configure returns a normalized copy of cfg with the dialect's defaults
// filled in, and the dialect itself.
func (a *App) configure(cfg *domain.Config, base string) (*domain.Config, ports.Dialect, error) {
	if cfg == nil {
		return nil, nil, domain.ErrNoRoots
	}
	c := clone(cfg)
	c.Normalize(base)

	dialect, err := a.dialects.Get(c.Dialect)
	if err != nil {
		return nil, nil, err
	}
	defaults := dialect.Defaults()
	if len(c.Suffixes) == 0 {
		c.Suffixes = defaults.Suffixes
	}
	if len(c.TestPatterns) == 0 {
		c.TestPatterns = defaults.TestPatterns
	}
	if len(c.TestDirs) == 0 {
		c.TestDirs = defaults.TestDirs
	}
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	return c, dialect, nil
}

// built is a sealed, classified graph and what it took to get there.
type built struct {
	graph *domain.Graph
	diags []domain.Diagnostic
	stats domain.BuildStats
}

// build runs the catalog, cache and builder phases and seals the graph.
func (a *App) build(ctx context.Context, log ports.Logger, cfg *domain.Config, dialect ports.Dialect) (*built, error) {
	tests, err := classifier.New(cfg.TestDirs, cfg.TestPatterns)
	if err != nil {
		return nil, err
	}

	catCtx, span := a.tracer.Start(ctx, "catalog")
	files, diags, err := a.catalog.Enumerate(catCtx, ports.CatalogRequest{
		Roots:    cfg.Roots,
		Ignores:  cfg.Ignores,
		Suffixes: cfg.Suffixes,
		Workers:  cfg.WorkerCount(),
	})
	span.SetAttribute("impact.files", len(files))
	if err != nil {
		span.RecordError(err)
		span.End()
		return nil, zerr.Wrap(err, "failed to enumerate sources")
	}
	span.End()
	log.Debug(fmt.Sprintf("catalogued %d files", len(files)))

	var snapshot *domain.CacheSnapshot
	if !cfg.Rebuild {
		loadCtx, span := a.tracer.Start(ctx, "cache.load")
		snap, cacheDiags, err := a.cache.Load(loadCtx, cfg.CacheFile)
		span.End()
		if err != nil {
			return nil, err
		}
		snapshot = snap
		diags = append(diags, cacheDiags...)
	}

	buildCtx, span := a.tracer.Start(ctx, "build")
	res, err := a.builder.Build(buildCtx, graph.Request{
		Files:       files,
		Snapshot:    snapshot,
		Dialect:     dialect,
		Parser:      cfg.Parser,
		Roots:       cfg.Roots,
		LookupPaths: cfg.LookupPaths,
		Workers:     cfg.WorkerCount(),
		Rebuild:     cfg.Rebuild,
	})
	if err != nil {
		span.RecordError(err)
		span.End()
		return nil, zerr.Wrap(err, "failed to build dependency graph")
	}
	res.Stats.Tests, err = tests.ClassifyGraph(res.Graph)
	if err != nil {
		span.End()
		return nil, err
	}
	res.Graph.Seal()
	span.SetAttribute("impact.edges", res.Stats.Edges)
	span.End()
	diags = append(diags, res.Diagnostics...)
	log.Debug(fmt.Sprintf("built graph: %d parsed, %d reused, %d re-resolved, %d degraded",
		res.Stats.Parsed, res.Stats.Reused, res.Stats.Reresolved, res.Stats.Degraded))

	storeCtx, span := a.tracer.Start(ctx, "cache.store")
	err = a.cache.Store(storeCtx, cfg.CacheFile, res.Snapshot)
	span.End()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		diags = append(diags, domain.Diagnostic{
			Kind:    domain.DiagCacheUnavailable,
			Path:    cfg.CacheFile,
			Message: err.Error(),
		})
	}

	return &built{graph: res.Graph, diags: diags, stats: res.Stats}, nil
}

func resolveBase(base string) (string, error) {
	if base != "" {
		return base, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get working directory")
	}
	return wd, nil
}

// clone copies cfg deeply enough that Normalize does not touch the original.
func clone(cfg *domain.Config) *domain.Config {
	c := *cfg
	c.Roots = slices.Clone(cfg.Roots)
	c.LookupPaths = slices.Clone(cfg.LookupPaths)
	return &c
}
