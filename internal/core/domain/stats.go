package domain

import "time"

// BuildStats counts what the graph builder did.
type BuildStats struct {
	Files      int
	Parsed     int
	Reused     int
	Reresolved int
	Degraded   int
	Edges      int
	Tests      int
}

// SelectionStats summarizes one selection for logging and metrics.
type SelectionStats struct {
	Build       BuildStats
	Changed     int
	Selected    int
	Fallback    bool
	Diagnostics int
	Duration    time.Duration
}
