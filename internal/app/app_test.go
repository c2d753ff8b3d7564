package app_test

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/impact/internal/adapters/cache"
	"go.trai.ch/impact/internal/adapters/dialect"
	"go.trai.ch/impact/internal/adapters/dialect/python"
	"go.trai.ch/impact/internal/adapters/fs"
	"go.trai.ch/impact/internal/adapters/metrics"
	"go.trai.ch/impact/internal/adapters/telemetry"
	"go.trai.ch/impact/internal/app"
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/impact/internal/core/ports/mocks"
	"go.trai.ch/impact/internal/engine/graph"
	"go.trai.ch/impact/internal/engine/impact"
	"go.uber.org/mock/gomock"
)

// project has two independent chains:
// app/a.py <- app/b.py <- tests/test_b.py and lib/c.py <- tests/test_c.py.
// tests/conftest.py is a source module nothing imports.
var project = map[string]string{
	"app/__init__.py":   "",
	"app/a.py":          "import os\n",
	"app/b.py":          "from app import a\n",
	"lib/c.py":          "import json\n",
	"tests/test_b.py":   "from app.b import thing\n",
	"tests/test_c.py":   "from lib import c\n",
	"tests/conftest.py": "import pytest\n",
}

type fixture struct {
	t    *testing.T
	root string
	ctrl *gomock.Controller
	log  *mocks.MockLogger
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{t: t, root: t.TempDir(), ctrl: ctrl, log: quietLogger(ctrl)}
	for rel, content := range files {
		f.write(rel, content)
	}
	return f
}

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().With(gomock.Any(), gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}

func (f *fixture) path(rel string) string {
	return filepath.Join(f.root, filepath.FromSlash(rel))
}

func (f *fixture) write(rel, content string) {
	f.t.Helper()
	p := f.path(rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(f.t, os.WriteFile(p, []byte(content), 0o600))
}

func (f *fixture) config() *domain.Config {
	return &domain.Config{Roots: []string{f.root}, Workers: 2}
}

// overrides replaces individual adapters of the assembled service.
type overrides struct {
	store    ports.GraphCache
	watcher  ports.Watcher
	catalog  ports.Catalog
	dialects ports.DialectRegistry
	tracer   ports.Tracer
	metrics  ports.Metrics
}

// app assembles the service from real adapters. store and w replace the
// cache and the watcher when non-nil.
func (f *fixture) app(store ports.GraphCache, w ports.Watcher) *app.App {
	return f.appWith(overrides{store: store, watcher: w})
}

func (f *fixture) appWith(o overrides) *app.App {
	if o.catalog == nil {
		o.catalog = fs.NewCatalog(fs.NewWalker(), fs.NewHasher())
	}
	if o.store == nil {
		o.store = cache.NewStore()
	}
	if o.watcher == nil {
		o.watcher = mocks.NewMockWatcher(f.ctrl)
	}
	if o.dialects == nil {
		o.dialects = dialect.NewRegistry(python.NewWithPythonPath(nil))
	}
	if o.tracer == nil {
		o.tracer = telemetry.NewNoOpTracer()
	}
	if o.metrics == nil {
		o.metrics = metrics.NewRecorder()
	}
	return app.New(
		o.catalog,
		o.store,
		o.dialects,
		graph.NewBuilder(o.catalog),
		impact.NewResolver(),
		f.log,
		o.tracer,
		o.metrics,
		o.watcher,
	)
}

func (f *fixture) selectTests(a *app.App, cfg *domain.Config, changed ...string) domain.ImpactResult {
	f.t.Helper()
	res, err := a.Select(context.Background(), app.SelectRequest{Config: cfg, Changed: changed, Base: f.root})
	require.NoError(f.t, err)
	return res
}

func (f *fixture) paths(rels ...string) []string {
	out := make([]string, 0, len(rels))
	for _, r := range rels {
		out = append(out, f.path(r))
	}
	return out
}

func TestApp_Select_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		changed []string
		want    []string
	}{
		{name: "transitive dependent", changed: []string{"app/a.py"}, want: []string{"tests/test_b.py"}},
		{name: "independent chain", changed: []string{"lib/c.py"}, want: []string{"tests/test_c.py"}},
		{name: "edited test selects itself", changed: []string{"tests/test_b.py"}, want: []string{"tests/test_b.py"}},
		{name: "both chains", changed: []string{"lib/c.py", "app/b.py"}, want: []string{"tests/test_b.py", "tests/test_c.py"}},
		{name: "empty change set", changed: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, project)
			res := f.selectTests(f.app(nil, nil), f.config(), tt.changed...)

			assert.Equal(t, f.paths(tt.want...), res.Tests)
			assert.False(t, res.Fallback)
			assert.Empty(t, res.Diagnostics)
		})
	}
}

func TestApp_Select_AbsolutePaths(t *testing.T) {
	f := newFixture(t, project)
	res, err := f.app(nil, nil).Select(context.Background(), app.SelectRequest{
		Config:  f.config(),
		Changed: []string{f.path("app/a.py")},
		Base:    t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, f.paths("tests/test_b.py"), res.Tests)
}

func TestApp_Select_UnresolvedChangeSelectsAll(t *testing.T) {
	f := newFixture(t, project)
	res := f.selectTests(f.app(nil, nil), f.config(), "README.md")

	assert.True(t, res.Fallback)
	assert.Equal(t, f.paths("tests/test_b.py", "tests/test_c.py"), res.Tests)
	assert.Equal(t, f.paths("README.md"), res.Unresolved)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, domain.DiagUnresolvedChange, res.Diagnostics[0].Kind)
}

func TestApp_Select_CacheTransparency(t *testing.T) {
	f := newFixture(t, project)
	a := f.app(nil, nil)
	cfg := f.config()

	cold := f.selectTests(a, cfg, "app/a.py")
	assert.FileExists(t, f.path(".impact/graph.json"))
	warm := f.selectTests(a, cfg, "app/a.py")
	assert.Equal(t, cold, warm)

	cfg.Rebuild = true
	rebuilt := f.selectTests(a, cfg, "app/a.py")
	assert.Equal(t, cold, rebuilt)
}

func TestApp_Select_PicksUpEdits(t *testing.T) {
	f := newFixture(t, project)
	a := f.app(nil, nil)
	cfg := f.config()

	assert.Equal(t, f.paths("tests/test_c.py"), f.selectTests(a, cfg, "lib/c.py").Tests)

	f.write("app/a.py", "import os\nfrom lib import c\n")
	res := f.selectTests(a, cfg, "lib/c.py")
	assert.Equal(t, f.paths("tests/test_b.py", "tests/test_c.py"), res.Tests)
}

func TestApp_Select_Cycle(t *testing.T) {
	f := newFixture(t, map[string]string{
		"a.py":      "import b\n",
		"b.py":      "import a\n",
		"test_a.py": "import a\n",
	})
	res := f.selectTests(f.app(nil, nil), f.config(), "b.py")

	assert.Equal(t, f.paths("test_a.py"), res.Tests)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, domain.DiagCycle, res.Diagnostics[0].Kind)
}

func TestApp_Select_ParseDegradation(t *testing.T) {
	f := newFixture(t, project)
	f.write("app/broken.py", "from app import (a,\n")
	res := f.selectTests(f.app(nil, nil), f.config(), "app/a.py")

	assert.Equal(t, f.paths("tests/test_b.py"), res.Tests)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, domain.DiagParseDegradation, res.Diagnostics[0].Kind)
	assert.Equal(t, f.path("app/broken.py"), res.Diagnostics[0].Path)
}

func TestApp_Select_Policy(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.Config)
		changed  []string
		want     []string
		fallback bool
	}{
		{
			name:     "run all on change",
			mutate:   func(c *domain.Config) { c.RunAllOnChange = []string{"conftest.py"} },
			changed:  []string{"tests/conftest.py"},
			want:     []string{"tests/test_b.py", "tests/test_c.py"},
			fallback: true,
		},
		{
			name:    "run all on change not matched",
			mutate:  func(c *domain.Config) { c.RunAllOnChange = []string{"lib/**"} },
			changed: []string{"app/a.py"},
			want:    []string{"tests/test_b.py"},
		},
		{
			name:    "test ignores",
			mutate:  func(c *domain.Config) { c.TestIgnores = []string{"test_b.py"} },
			changed: []string{"app/a.py", "lib/c.py"},
			want:    []string{"tests/test_c.py"},
		},
		{
			name:    "always run",
			mutate:  func(c *domain.Config) { c.AlwaysRun = []string{"tests/test_c.py"} },
			changed: []string{"app/a.py"},
			want:    []string{"tests/test_b.py", "tests/test_c.py"},
		},
		{
			name: "always run wins over ignores",
			mutate: func(c *domain.Config) {
				c.AlwaysRun = []string{"test_c.py"}
				c.TestIgnores = []string{"tests/*"}
			},
			changed: []string{"app/a.py"},
			want:    []string{"tests/test_c.py"},
		},
		{
			name:    "always run needs a change",
			mutate:  func(c *domain.Config) { c.AlwaysRun = []string{"test_c.py"} },
			changed: nil,
			want:    []string{},
		},
		{
			name:     "ignores apply to fallback",
			mutate:   func(c *domain.Config) { c.TestIgnores = []string{"test_b.py"} },
			changed:  []string{"setup.cfg"},
			want:     []string{"tests/test_c.py"},
			fallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, project)
			cfg := f.config()
			tt.mutate(cfg)
			res := f.selectTests(f.app(nil, nil), cfg, tt.changed...)

			assert.Equal(t, f.paths(tt.want...), res.Tests)
			assert.Equal(t, tt.fallback, res.Fallback)
		})
	}
}

func TestApp_Select_CustomConventions(t *testing.T) {
	f := newFixture(t, map[string]string{
		"core.py":             "",
		"checks/core_spec.py": "import core\n",
		"test_legacy.py":      "import core\n",
	})
	cfg := f.config()
	cfg.TestDirs = []string{"checks"}
	cfg.TestPatterns = []string{"*_spec.py"}
	res := f.selectTests(f.app(nil, nil), cfg, "core.py")

	assert.Equal(t, f.paths("checks/core_spec.py"), res.Tests)
}

func TestApp_Select_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.Config)
		category error
		target   error
	}{
		{
			name:     "missing root",
			mutate:   func(c *domain.Config) { c.Roots = append(c.Roots, "does-not-exist") },
			category: domain.ErrIO,
		},
		{
			name:     "no roots",
			mutate:   func(c *domain.Config) { c.Roots = nil },
			category: domain.ErrConfiguration,
			target:   domain.ErrNoRoots,
		},
		{
			name:     "unknown dialect",
			mutate:   func(c *domain.Config) { c.Dialect = "cobol" },
			category: domain.ErrConfiguration,
		},
		{
			name:     "negative workers",
			mutate:   func(c *domain.Config) { c.Workers = -1 },
			category: domain.ErrConfiguration,
		},
		{
			name:     "invalid policy glob",
			mutate:   func(c *domain.Config) { c.AlwaysRun = []string{"[a-"} },
			category: domain.ErrConfiguration,
		},
		{
			name:     "unknown parser",
			mutate:   func(c *domain.Config) { c.Parser = "magic" },
			category: domain.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, project)
			cfg := f.config()
			tt.mutate(cfg)

			_, err := f.app(nil, nil).Select(context.Background(), app.SelectRequest{
				Config:  cfg,
				Changed: []string{"app/a.py"},
				Base:    f.root,
			})
			require.Error(t, err)
			require.ErrorIs(t, err, tt.category)
			if tt.target != nil {
				require.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestApp_Select_DoesNotModifyConfig(t *testing.T) {
	f := newFixture(t, project)
	cfg := &domain.Config{Roots: []string{"."}}
	f.selectTests(f.app(nil, nil), cfg, "app/a.py")

	assert.Equal(t, []string{"."}, cfg.Roots)
	assert.Empty(t, cfg.Suffixes)
	assert.Empty(t, cfg.CacheFile)
}

func TestApp_Select_CacheStoreFailure(t *testing.T) {
	f := newFixture(t, project)
	store := mocks.NewMockGraphCache(f.ctrl)
	store.EXPECT().Load(gomock.Any(), f.path(".impact/graph.json")).
		Return(domain.NewCacheSnapshot(), nil, nil)
	store.EXPECT().Store(gomock.Any(), f.path(".impact/graph.json"), gomock.Any()).
		Return(errors.New("disk full"))

	res := f.selectTests(f.app(store, nil), f.config(), "app/a.py")

	assert.Equal(t, f.paths("tests/test_b.py"), res.Tests)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, domain.DiagCacheUnavailable, res.Diagnostics[0].Kind)
	assert.Equal(t, "disk full", res.Diagnostics[0].Message)
}

func TestApp_Select_CorruptCache(t *testing.T) {
	f := newFixture(t, project)
	f.write(".impact/graph.json", "{not json")

	res := f.selectTests(f.app(nil, nil), f.config(), "app/a.py")

	assert.Equal(t, f.paths("tests/test_b.py"), res.Tests)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, domain.DiagCacheCorruption, res.Diagnostics[0].Kind)
}

func TestApp_Select_SkipsCacheLoadOnRebuild(t *testing.T) {
	f := newFixture(t, project)
	store := mocks.NewMockGraphCache(f.ctrl)
	store.EXPECT().Store(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	cfg := f.config()
	cfg.Rebuild = true
	res := f.selectTests(f.app(store, nil), cfg, "lib/c.py")
	assert.Equal(t, f.paths("tests/test_c.py"), res.Tests)
}

func TestApp_Select_MetricsFile(t *testing.T) {
	f := newFixture(t, project)
	cfg := f.config()
	cfg.MetricsFile = filepath.Join(t.TempDir(), "out", "impact.prom")

	f.selectTests(f.app(nil, nil), cfg, "app/a.py")

	data, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "impact_selections_total 1")
	assert.Contains(t, string(data), "impact_selected_tests 1")
}

func TestApp_Select_RecordsStats(t *testing.T) {
	f := newFixture(t, project)
	rec := mocks.NewMockMetrics(f.ctrl)
	var stats domain.SelectionStats
	rec.EXPECT().Observe(gomock.Any()).Do(func(s domain.SelectionStats) { stats = s })
	metricsFile := filepath.Join(t.TempDir(), "impact.prom")
	rec.EXPECT().WriteFile(metricsFile).Return(errors.New("disk full"))

	cfg := f.config()
	cfg.MetricsFile = metricsFile
	res := f.selectTests(f.appWith(overrides{metrics: rec}), cfg, "app/a.py")

	assert.Equal(t, f.paths("tests/test_b.py"), res.Tests)
	assert.Equal(t, len(project), stats.Build.Files)
	assert.Equal(t, len(project), stats.Build.Parsed)
	assert.Equal(t, 2, stats.Build.Tests)
	assert.Equal(t, 1, stats.Changed)
	assert.Equal(t, 1, stats.Selected)
	assert.False(t, stats.Fallback)
	assert.GreaterOrEqual(t, stats.Duration, time.Duration(0))
}

func TestApp_Select_Spans(t *testing.T) {
	f := newFixture(t, project)
	span := mocks.NewMockSpan(f.ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(f.ctrl)
	var names []string
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, name string) (context.Context, ports.Span) {
			names = append(names, name)
			return ctx, span
		}).AnyTimes()

	f.selectTests(f.appWith(overrides{tracer: tracer}), f.config(), "app/a.py")

	assert.Equal(t, []string{"select", "catalog", "cache.load", "build", "cache.store", "resolve"}, names)
}

func TestApp_Select_CatalogFailure(t *testing.T) {
	f := newFixture(t, project)
	catalog := mocks.NewMockCatalog(f.ctrl)
	catalog.EXPECT().Enumerate(gomock.Any(), ports.CatalogRequest{
		Roots:    []string{f.root},
		Suffixes: []string{".py"},
		Workers:  2,
	}).Return(nil, nil, domain.ErrRootUnreadable)

	span := mocks.NewMockSpan(f.ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).Times(2)
	tracer := mocks.NewMockTracer(f.ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).Times(2)

	_, err := f.appWith(overrides{catalog: catalog, tracer: tracer}).Select(context.Background(), app.SelectRequest{
		Config:  f.config(),
		Changed: []string{"app/a.py"},
		Base:    f.root,
	})
	require.ErrorIs(t, err, domain.ErrIO)
	assert.Contains(t, err.Error(), "failed to enumerate sources")
}

func TestApp_Select_DialectDefaults(t *testing.T) {
	f := newFixture(t, map[string]string{
		"lib/core.c":         "",
		"lib/core.h":         "",
		"tests/check_core.c": "#include \"../lib/core.h\"\n",
	})

	d := mocks.NewMockDialect(f.ctrl)
	d.EXPECT().Name().Return("c").AnyTimes()
	d.EXPECT().Defaults().Return(ports.DialectDefaults{
		Suffixes:     []string{".c", ".h"},
		TestPatterns: []string{"check_*.c"},
		Parser:       "includes",
	}).AnyTimes()
	d.EXPECT().SearchPaths([]string{f.root}, gomock.Any()).Return([]string{f.root})

	parser := mocks.NewMockImportParser(f.ctrl)
	parser.EXPECT().Parse(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, path string, _ []byte) ([]string, error) {
			if path == f.path("tests/check_core.c") {
				return []string{"../lib/core.h"}, nil
			}
			return nil, nil
		}).Times(3)
	d.EXPECT().Parser("includes").Return(parser, nil)

	resolver := mocks.NewMockResolver(f.ctrl)
	resolver.EXPECT().Resolve(f.path("tests/check_core.c"), "../lib/core.h").Return(f.path("lib/core.h"), true)
	d.EXPECT().NewResolver(gomock.Any(), []string{f.root}).Return(resolver)

	registry := mocks.NewMockDialectRegistry(f.ctrl)
	registry.EXPECT().Get("c").Return(d, nil)

	cfg := f.config()
	cfg.Dialect = "c"
	res := f.selectTests(f.appWith(overrides{dialects: registry}), cfg, "lib/core.h")

	assert.Equal(t, f.paths("tests/check_core.c"), res.Tests)
}

func TestApp_Select_Cancelled(t *testing.T) {
	f := newFixture(t, project)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.app(nil, nil).Select(ctx, app.SelectRequest{Config: f.config(), Changed: []string{"app/a.py"}, Base: f.root})
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, f.path(".impact/graph.json"))
}

func TestApp_Graph(t *testing.T) {
	f := newFixture(t, project)
	a := f.app(nil, nil)

	full, err := a.Graph(context.Background(), app.GraphRequest{Config: f.config(), Base: f.root})
	require.NoError(t, err)
	assert.Contains(t, string(full), "digraph impact {")
	assert.Contains(t, string(full), `"app/b.py" -> "app/a.py"`)
	assert.Contains(t, string(full), `"tests/test_c.py" -> "lib/c.py"`)

	impacted, err := a.Graph(context.Background(), app.GraphRequest{
		Config:  f.config(),
		Changed: []string{"lib/c.py"},
		Base:    f.root,
	})
	require.NoError(t, err)
	assert.Contains(t, string(impacted), `"tests/test_c.py" -> "lib/c.py"`)
	assert.NotContains(t, string(impacted), "app/a.py")
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t, project)
	a := f.app(nil, nil)
	cfg := f.config()

	f.selectTests(a, cfg, "app/a.py")
	require.FileExists(t, f.path(".impact/graph.json"))

	require.NoError(t, a.Clean(context.Background(), cfg))
	assert.NoFileExists(t, f.path(".impact/graph.json"))

	// Cleaning twice is fine.
	require.NoError(t, a.Clean(context.Background(), cfg))
}

func TestApp_Clean_CustomCacheFile(t *testing.T) {
	f := newFixture(t, nil)
	store := mocks.NewMockGraphCache(f.ctrl)
	cacheFile := filepath.Join(t.TempDir(), "graph.json")
	store.EXPECT().Remove(cacheFile).Return(nil)

	cfg := f.config()
	cfg.CacheFile = cacheFile
	require.NoError(t, f.app(store, nil).Clean(context.Background(), cfg))
}

func TestApp_Watch(t *testing.T) {
	f := newFixture(t, project)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	w := mocks.NewMockWatcher(f.ctrl)
	w.EXPECT().Start(gomock.Any(), []string{f.root}).Return(nil)
	w.EXPECT().Stop().Return(nil)
	w.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
		events := []ports.WatchEvent{
			{Path: f.path(".impact/graph.json"), Operation: ports.OpWrite},
			{Path: f.path("notes.txt"), Operation: ports.OpCreate},
			{Path: f.path("app/a.py"), Operation: ports.OpWrite},
			{Path: f.path("app/a.py"), Operation: ports.OpWrite},
		}
		for _, ev := range events {
			if !yield(ev) {
				return
			}
		}
		<-ctx.Done()
	}))

	var results []domain.ImpactResult
	a := f.app(nil, w).WithDebounce(10 * time.Millisecond)
	err := a.Watch(ctx, app.WatchRequest{Config: f.config(), Base: f.root}, func(res domain.ImpactResult) {
		results = append(results, res)
		cancel()
	})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, f.paths("tests/test_b.py"), results[0].Tests)
}

func TestApp_Watch_StartFailure(t *testing.T) {
	f := newFixture(t, project)
	w := mocks.NewMockWatcher(f.ctrl)
	w.EXPECT().Start(gomock.Any(), gomock.Any()).Return(errors.New("too many open files"))

	err := f.app(nil, w).Watch(context.Background(), app.WatchRequest{Config: f.config(), Base: f.root},
		func(domain.ImpactResult) { t.Fatal("unexpected selection") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start watcher")
}
