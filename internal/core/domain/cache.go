package domain

// CacheVersion is the on-disk cache format version. A snapshot with any other
// version is discarded and the graph is rebuilt.
const CacheVersion = 2

// CacheEntry is the persisted analysis of one module.
type CacheEntry struct {
	Path         string      `json:"path"`
	Fingerprint  Fingerprint `json:"fingerprint"`
	Declarations []string    `json:"declarations,omitempty"`
	Edges        []string    `json:"edges,omitempty"`
}

// CacheSnapshot is the full persisted state of a previous build.
type CacheSnapshot struct {
	Version int `json:"version"`
	// SettingsKey fingerprints everything that changes how files are parsed
	// and resolved. Entries are only reused when it matches.
	SettingsKey string `json:"settings_key"`
	// CatalogKey fingerprints the set of catalogued paths. Cached edges are
	// only reused verbatim when it matches; otherwise declarations are re-resolved.
	CatalogKey string                `json:"catalog_key"`
	Entries    map[string]CacheEntry `json:"entries"`
}

// NewCacheSnapshot returns an empty snapshot of the current version.
func NewCacheSnapshot() *CacheSnapshot {
	return &CacheSnapshot{
		Version: CacheVersion,
		Entries: make(map[string]CacheEntry),
	}
}

// Lookup returns the entry for path if present.
func (s *CacheSnapshot) Lookup(path string) (CacheEntry, bool) {
	if s == nil {
		return CacheEntry{}, false
	}
	e, ok := s.Entries[path]
	return e, ok
}

// Len returns the number of entries.
func (s *CacheSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}
