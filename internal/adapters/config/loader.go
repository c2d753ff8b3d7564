// Package config loads the selection configuration from files, the
// environment and command-line flags.
package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/zerr"
)

const delim = "."

// Loader implements ports.ConfigLoader with koanf. Layers, lowest priority
// first: defaults, impact.yaml, impact.toml, the [tool.impact] table of
// pyproject.toml, IMPACT_* environment variables, changed flags.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads configuration from dir, then the environment, then the changed
// flags. Relative paths are resolved against dir.
func (l *Loader) Load(dir string, flags *pflag.FlagSet) (*domain.Config, error) {
	k := koanf.New(delim)

	if err := k.Load(mapProvider(defaults()), nil); err != nil {
		return nil, zerr.Wrap(err, "failed to load defaults")
	}

	if err := l.loadFile(k, filepath.Join(dir, domain.ConfigYAMLName), yamlParser{}); err != nil {
		return nil, err
	}
	if err := l.loadFile(k, filepath.Join(dir, domain.ConfigTOMLName), toml.Parser()); err != nil {
		return nil, err
	}
	if err := l.loadPyproject(k, filepath.Join(dir, domain.PyprojectName)); err != nil {
		return nil, err
	}

	if err := k.Load(env.ProviderWithValue(domain.EnvPrefix, delim, envKey), nil); err != nil {
		return nil, zerr.Wrap(err, "failed to load environment")
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, delim, k), nil); err != nil {
			return nil, zerr.Wrap(err, "failed to load flags")
		}
	}

	var fc FileConfig
	if err := k.Unmarshal("", &fc); err != nil {
		return nil, zerr.With(domain.ErrConfigParseFailed, "cause", err.Error())
	}

	cfg := fc.toDomain()
	cfg.Normalize(dir)
	return cfg, nil
}

// loadFile merges path into k. A missing file is skipped.
func (l *Loader) loadFile(k *koanf.Koanf, path string, parser koanf.Parser) error {
	data, ok, err := readOptional(path)
	if err != nil || !ok {
		return err
	}
	if err := k.Load(rawBytes(data), parser); err != nil {
		return parseError(path, err)
	}
	l.logger.Debug("loaded configuration from " + path)
	return nil
}

// loadPyproject merges the [tool.impact] table of pyproject.toml into k.
// A pyproject.toml without the table is skipped.
func (l *Loader) loadPyproject(k *koanf.Koanf, path string) error {
	data, ok, err := readOptional(path)
	if err != nil || !ok {
		return err
	}

	project := koanf.New(delim)
	if err := project.Load(rawBytes(data), toml.Parser()); err != nil {
		return parseError(path, err)
	}
	if !project.Exists(pyprojectTable) {
		return nil
	}
	if err := k.Merge(project.Cut(pyprojectTable)); err != nil {
		return parseError(path, err)
	}
	l.logger.Debug("loaded configuration from " + path + " [" + pyprojectTable + "]")
	return nil
}

// readOptional reads path, reporting false when it does not exist.
func readOptional(path string) ([]byte, bool, error) {
	data, err := file.Provider(path).ReadBytes()
	if err == nil {
		return data, true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	return nil, false, zerr.With(zerr.With(domain.ErrConfigReadFailed, "file", path), "cause", err.Error())
}

func parseError(path string, err error) error {
	return zerr.With(zerr.With(domain.ErrConfigParseFailed, "file", path), "cause", err.Error())
}

// envKey maps IMPACT_CACHE_FILE=x to cache-file=x and splits list values on commas.
func envKey(key, value string) (string, any) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, domain.EnvPrefix)), "_", "-")
	if !listKeys[name] {
		return name, value
	}
	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if items == nil {
		items = []string{}
	}
	return name, items
}

// mapProvider loads a map as a koanf layer.
type mapProvider map[string]any

func (p mapProvider) Read() (map[string]any, error) {
	return p, nil
}

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("not implemented")
}

// rawBytes hands already-read bytes to a koanf parser.
type rawBytes []byte

func (b rawBytes) Read() (map[string]any, error) {
	return nil, errors.New("not implemented")
}

func (b rawBytes) ReadBytes() ([]byte, error) {
	return b, nil
}
