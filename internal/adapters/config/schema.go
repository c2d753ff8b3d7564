package config

import (
	"go.trai.ch/impact/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// Configuration keys. Flags, environment variables and files share them.
const (
	KeyRoots          = "roots"
	KeyIgnores        = "ignores"
	KeySuffixes       = "suffixes"
	KeyTestDirs       = "test-dirs"
	KeyTestPatterns   = "test-patterns"
	KeyCacheFile      = "cache-file"
	KeyRebuild        = "rebuild"
	KeyDialect        = "dialect"
	KeyParser         = "parser"
	KeyLookupPaths    = "lookup-paths"
	KeyWorkers        = "workers"
	KeyAlwaysRun      = "always-run"
	KeyTestIgnores    = "test-ignores"
	KeyRunAllOnChange = "run-all-on-change"
	KeyMetricsFile    = "metrics-file"
	KeyTraceFile      = "trace-file"
	KeyLogJSON        = "log-json"
	KeyVerbose        = "verbose"
)

// listKeys are split on commas when they come from the environment.
var listKeys = map[string]bool{
	KeyRoots:          true,
	KeyIgnores:        true,
	KeySuffixes:       true,
	KeyTestDirs:       true,
	KeyTestPatterns:   true,
	KeyLookupPaths:    true,
	KeyAlwaysRun:      true,
	KeyTestIgnores:    true,
	KeyRunAllOnChange: true,
}

// pyprojectTable is the pyproject.toml table holding configuration.
const pyprojectTable = "tool.impact"

// FileConfig is the shape of a configuration file.
type FileConfig struct {
	Roots          []string `koanf:"roots"`
	Ignores        []string `koanf:"ignores"`
	Suffixes       []string `koanf:"suffixes"`
	TestDirs       []string `koanf:"test-dirs"`
	TestPatterns   []string `koanf:"test-patterns"`
	CacheFile      string   `koanf:"cache-file"`
	Rebuild        bool     `koanf:"rebuild"`
	Dialect        string   `koanf:"dialect"`
	Parser         string   `koanf:"parser"`
	LookupPaths    []string `koanf:"lookup-paths"`
	Workers        int      `koanf:"workers"`
	AlwaysRun      []string `koanf:"always-run"`
	TestIgnores    []string `koanf:"test-ignores"`
	RunAllOnChange []string `koanf:"run-all-on-change"`
	MetricsFile    string   `koanf:"metrics-file"`
	TraceFile      string   `koanf:"trace-file"`
	LogJSON        bool     `koanf:"log-json"`
	Verbose        bool     `koanf:"verbose"`
}

// defaults are the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		KeyRoots:          []string{"."},
		KeyIgnores:        []string{},
		KeySuffixes:       []string{},
		KeyTestDirs:       []string{},
		KeyTestPatterns:   []string{},
		KeyCacheFile:      "",
		KeyRebuild:        false,
		KeyDialect:        domain.DefaultDialect,
		KeyParser:         "",
		KeyLookupPaths:    []string{},
		KeyWorkers:        0,
		KeyAlwaysRun:      []string{},
		KeyTestIgnores:    []string{},
		KeyRunAllOnChange: []string{},
		KeyMetricsFile:    "",
		KeyTraceFile:      "",
		KeyLogJSON:        false,
		KeyVerbose:        false,
	}
}

// toDomain converts the decoded file shape into the engine configuration.
func (f *FileConfig) toDomain() *domain.Config {
	return &domain.Config{
		Roots:          f.Roots,
		Ignores:        f.Ignores,
		Suffixes:       f.Suffixes,
		TestDirs:       f.TestDirs,
		TestPatterns:   f.TestPatterns,
		CacheFile:      f.CacheFile,
		Rebuild:        f.Rebuild,
		Dialect:        f.Dialect,
		Parser:         f.Parser,
		LookupPaths:    f.LookupPaths,
		Workers:        f.Workers,
		AlwaysRun:      f.AlwaysRun,
		TestIgnores:    f.TestIgnores,
		RunAllOnChange: f.RunAllOnChange,
		MetricsFile:    f.MetricsFile,
		TraceFile:      f.TraceFile,
		LogJSON:        f.LogJSON,
		Verbose:        f.Verbose,
	}
}

// yamlParser implements koanf.Parser with gopkg.in/yaml.v3.
type yamlParser struct{}

func (yamlParser) Unmarshal(b []byte) (map[string]any, error) {
	out := make(map[string]any)
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (yamlParser) Marshal(o map[string]any) ([]byte, error) {
	return yaml.Marshal(o)
}
