package domain

import "go.trai.ch/zerr"

// Error categories. Only these two are fatal to a selection call; every other
// failure is recorded as a Diagnostic and the selection degrades toward running
// more tests.
var (
	// ErrConfiguration is the category of errors caused by bad or missing configuration.
	ErrConfiguration = zerr.New("configuration error")

	// ErrIO is the category of errors caused by an unreadable catalog root.
	ErrIO = zerr.New("i/o error")
)

var (
	// ErrNoRoots is returned when no catalog roots are configured.
	ErrNoRoots = zerr.Wrap(ErrConfiguration, "no catalog roots configured")

	// ErrNoSuffixes is returned when the source suffix list is empty.
	ErrNoSuffixes = zerr.Wrap(ErrConfiguration, "no source suffixes configured")

	// ErrInvalidPattern is returned when a configured glob does not compile.
	ErrInvalidPattern = zerr.Wrap(ErrConfiguration, "invalid glob pattern")

	// ErrUnknownDialect is returned when the configured dialect is not registered.
	ErrUnknownDialect = zerr.Wrap(ErrConfiguration, "unknown dialect")

	// ErrUnknownParser is returned when a dialect has no parser with the configured name.
	ErrUnknownParser = zerr.Wrap(ErrConfiguration, "unknown parser")

	// ErrParserUnavailable is returned when a parser exists but is not compiled into this binary.
	ErrParserUnavailable = zerr.Wrap(ErrConfiguration, "parser not available in this build")

	// ErrInvalidWorkers is returned when the worker count is negative.
	ErrInvalidWorkers = zerr.Wrap(ErrConfiguration, "worker count must not be negative")

	// ErrInvalidFormat is returned when an unsupported output format is requested.
	ErrInvalidFormat = zerr.Wrap(ErrConfiguration, "invalid output format, expected 'lines', 'json' or 'yaml'")

	// ErrConfigReadFailed is returned when a configuration file exists but cannot be read.
	ErrConfigReadFailed = zerr.Wrap(ErrConfiguration, "failed to read config file")

	// ErrConfigParseFailed is returned when a configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.Wrap(ErrConfiguration, "failed to parse config file")
)

var (
	// ErrRootNotFound is returned when a catalog root does not exist.
	ErrRootNotFound = zerr.Wrap(ErrIO, "catalog root does not exist")

	// ErrRootNotDirectory is returned when a catalog root is not a directory.
	ErrRootNotDirectory = zerr.Wrap(ErrIO, "catalog root is not a directory")

	// ErrRootUnreadable is returned when a catalog root cannot be stat'ed or listed.
	ErrRootUnreadable = zerr.Wrap(ErrIO, "catalog root is unreadable")

	// ErrChangesUnreadable is returned when the changed-path input cannot be read.
	ErrChangesUnreadable = zerr.Wrap(ErrIO, "failed to read changed paths")
)

// ErrParseFailed is returned by a parser that cannot extract declarations from a file.
var ErrParseFailed = zerr.New("failed to parse dependency declarations")

var (
	// ErrModuleExists is returned when a module with the same path is added twice.
	ErrModuleExists = zerr.New("module already exists")

	// ErrDanglingEdge is returned when an edge references a module outside the arena.
	ErrDanglingEdge = zerr.New("edge references unknown module")

	// ErrGraphSealed is returned when a sealed graph is mutated.
	ErrGraphSealed = zerr.New("graph is sealed")

	// ErrGraphNotSealed is returned when a graph is resolved before it was sealed.
	ErrGraphNotSealed = zerr.New("graph is not sealed")
)

var (
	// ErrCacheLocked is returned when another process holds the cache lock.
	ErrCacheLocked = zerr.New("cache is locked by another process")

	// ErrCacheVersionMismatch is returned when the cache was written by another format version.
	ErrCacheVersionMismatch = zerr.New("cache format version mismatch")

	// ErrCacheCorrupt is returned when the cache file cannot be decoded.
	ErrCacheCorrupt = zerr.New("cache file is corrupt")
)
