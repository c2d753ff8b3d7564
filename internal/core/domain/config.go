package domain

import (
	"path/filepath"
	"runtime"

	"go.trai.ch/zerr"
)

// DefaultDialect is the dialect used when none is configured.
const DefaultDialect = "python"

// Config is the explicit configuration of a selection. It is passed to the
// selection service; nothing reads configuration from global state.
type Config struct {
	// Roots are the directories to catalog.
	Roots []string
	// Ignores are glob patterns of files and directories to skip.
	Ignores []string
	// Suffixes are the file suffixes to catalog, e.g. ".py".
	Suffixes []string
	// TestDirs are directory names whose contents are tests.
	TestDirs []string
	// TestPatterns are base-name globs that identify test files.
	TestPatterns []string
	// CacheFile is the location of the graph cache.
	CacheFile string
	// Rebuild ignores the cache and parses every file.
	Rebuild bool
	// Dialect selects the parser and resolution strategy.
	Dialect string
	// Parser selects a parser implementation within the dialect.
	Parser string
	// LookupPaths are extra directories absolute declarations are resolved against.
	LookupPaths []string
	// Workers bounds the catalog and parse worker pool. Zero means one per CPU.
	Workers int
	// AlwaysRun are globs of tests that are always selected.
	AlwaysRun []string
	// TestIgnores are globs of tests that are never selected.
	TestIgnores []string
	// RunAllOnChange are globs of paths that select every test when changed.
	RunAllOnChange []string
	// MetricsFile receives a Prometheus textfile after each selection.
	MetricsFile string
	// TraceFile receives OpenTelemetry spans as JSON.
	TraceFile string
	// LogJSON switches logging to JSON.
	LogJSON bool
	// Verbose enables debug logging.
	Verbose bool
}

// Normalize makes roots, lookup paths and the cache location absolute
// against base, and fills the cache location default.
func (c *Config) Normalize(base string) {
	for i, r := range c.Roots {
		c.Roots[i] = NormalizePath(base, r)
	}
	for i, p := range c.LookupPaths {
		c.LookupPaths[i] = NormalizePath(base, p)
	}
	if c.Dialect == "" {
		c.Dialect = DefaultDialect
	}
	if c.CacheFile == "" && len(c.Roots) > 0 {
		c.CacheFile = filepath.Join(c.Roots[0], DefaultCachePath())
	} else if c.CacheFile != "" {
		c.CacheFile = NormalizePath(base, c.CacheFile)
	}
	if c.MetricsFile != "" {
		c.MetricsFile = NormalizePath(base, c.MetricsFile)
	}
	if c.TraceFile != "" {
		c.TraceFile = NormalizePath(base, c.TraceFile)
	}
}

// Validate checks the configuration for errors that make selection impossible.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return ErrNoRoots
	}
	if len(c.Suffixes) == 0 {
		return zerr.With(ErrNoSuffixes, "dialect", c.Dialect)
	}
	if c.Workers < 0 {
		return zerr.With(ErrInvalidWorkers, "workers", c.Workers)
	}
	return nil
}

// WorkerCount returns the effective size of the worker pool.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
