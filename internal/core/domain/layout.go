package domain

import "path/filepath"

const (
	// ImpactDirName is the name of the per-root state directory.
	ImpactDirName = ".impact"

	// CacheFileName is the name of the graph cache file.
	CacheFileName = "graph.json"

	// LockSuffix is appended to the cache path to name its lock file.
	LockSuffix = ".lock"

	// ConfigYAMLName is the YAML configuration file name.
	ConfigYAMLName = "impact.yaml"

	// ConfigTOMLName is the TOML configuration file name.
	ConfigTOMLName = "impact.toml"

	// PyprojectName is the Python project file that may carry a [tool.impact] table.
	PyprojectName = "pyproject.toml"

	// EnvPrefix prefixes every environment variable read as configuration.
	EnvPrefix = "IMPACT_"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the cache location relative to a root.
// It joins .impact and graph.json.
func DefaultCachePath() string {
	return filepath.Join(ImpactDirName, CacheFileName)
}

// LockPath returns the advisory lock file for a cache file.
func LockPath(cacheFile string) string {
	return cacheFile + LockSuffix
}
