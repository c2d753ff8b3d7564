package ports

import "go.trai.ch/impact/internal/core/domain"

// Metrics records selection statistics.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// Observe records the statistics of one selection.
	Observe(stats domain.SelectionStats)
	// WriteFile writes the collected metrics in text exposition format.
	WriteFile(path string) error
}
