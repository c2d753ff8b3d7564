package domain

// DiagnosticKind classifies a non-fatal condition.
type DiagnosticKind string

const (
	// DiagParseDegradation is recorded when a file could not be parsed.
	DiagParseDegradation DiagnosticKind = "parse_degradation"
	// DiagCacheCorruption is recorded when the cache could not be decoded or has another version.
	DiagCacheCorruption DiagnosticKind = "cache_corruption"
	// DiagCacheUnavailable is recorded when the cache is locked or cannot be written.
	DiagCacheUnavailable DiagnosticKind = "cache_unavailable"
	// DiagFileSkipped is recorded when a file inside a root could not be read.
	DiagFileSkipped DiagnosticKind = "file_skipped"
	// DiagUnresolvedImport is recorded when a declaration resolves to no catalogued module.
	DiagUnresolvedImport DiagnosticKind = "unresolved_import"
	// DiagUnresolvedChange is recorded when a changed path maps to no module.
	DiagUnresolvedChange DiagnosticKind = "unresolved_change"
	// DiagCycle is recorded for each dependency cycle found in the graph.
	DiagCycle DiagnosticKind = "cycle"
)

// Diagnostic is a non-fatal condition reported alongside a selection.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Path    string         `json:"path,omitempty" yaml:"path,omitempty"`
	Message string         `json:"message" yaml:"message"`
}

// Degrading reports whether the diagnostic should be surfaced to the user.
// Unresolved imports are expected for third-party code and are debug output only.
func (d Diagnostic) Degrading() bool {
	return d.Kind != DiagUnresolvedImport
}

// String formats the diagnostic on one line.
func (d Diagnostic) String() string {
	if d.Path == "" {
		return string(d.Kind) + ": " + d.Message
	}
	return string(d.Kind) + ": " + d.Path + ": " + d.Message
}

// CountDegrading returns how many diagnostics are user-facing.
func CountDegrading(diags []Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Degrading() {
			n++
		}
	}
	return n
}
