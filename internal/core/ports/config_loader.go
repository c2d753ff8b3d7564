package ports

import (
	"github.com/spf13/pflag"
	"go.trai.ch/impact/internal/core/domain"
)

// ConfigLoader defines the interface for loading the selection configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads configuration files from dir, then the environment, then the
	// changed flags, and returns the merged configuration.
	Load(dir string, flags *pflag.FlagSet) (*domain.Config, error)
}
