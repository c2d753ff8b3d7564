// Package commands implements the CLI commands for impact.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/impact/internal/adapters/config"    //nolint:depguard // Flag names are the config keys
	"go.trai.ch/impact/internal/adapters/telemetry" //nolint:depguard // Trace export is installed per invocation
	"go.trai.ch/impact/internal/app"
	"go.trai.ch/impact/internal/build"
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for impact.
type CLI struct {
	app      Application
	loader   ports.ConfigLoader
	changes  ports.ChangeReader
	logger   ports.Logger
	rootCmd  *cobra.Command
	shutdown telemetry.ShutdownFunc
}

// Application represents the application logic interface.
type Application interface {
	Select(ctx context.Context, req app.SelectRequest) (domain.ImpactResult, error)
	Graph(ctx context.Context, req app.GraphRequest) ([]byte, error)
	Watch(ctx context.Context, req app.WatchRequest, emit func(domain.ImpactResult)) error
	Clean(ctx context.Context, cfg *domain.Config) error
}

// levelSetter is implemented by loggers whose format and level can change at runtime.
type levelSetter interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// New creates a new CLI instance.
func New(a Application, loader ports.ConfigLoader, changes ports.ChangeReader, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "impact",
		Short:         "Select the tests affected by a change",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		loader:  loader,
		changes: changes,
		logger:  log,
		rootCmd: rootCmd,
	}
	c.registerConfigFlags(rootCmd)

	rootCmd.AddCommand(c.newSelectCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()
	if c.shutdown != nil {
		err = errors.Join(err, c.shutdown(context.WithoutCancel(ctx)))
		c.shutdown = nil
	}
	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the stream "-" reads changed paths from. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

// registerConfigFlags adds one persistent flag per configuration key.
// Only flags set on the command line override files and the environment.
func (c *CLI) registerConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringP("dir", "C", ".", "Directory to read configuration from and resolve relative paths against")
	f.StringSlice(config.KeyRoots, nil, "Directories to catalog")
	f.StringSlice(config.KeyIgnores, nil, "Glob patterns of files and directories to skip")
	f.StringSlice(config.KeySuffixes, nil, "File suffixes to catalog (default from the dialect)")
	f.StringSlice(config.KeyTestDirs, nil, "Directory names whose files are tests")
	f.StringSlice(config.KeyTestPatterns, nil, "File name globs that identify tests")
	f.String(config.KeyCacheFile, "", "Graph cache location (default <first root>/.impact/graph.json)")
	f.Bool(config.KeyRebuild, false, "Ignore the cache and parse every file")
	f.String(config.KeyDialect, domain.DefaultDialect, "Language dialect: python or cinclude")
	f.String(config.KeyParser, "", "Parser implementation of the dialect")
	f.StringSlice(config.KeyLookupPaths, nil, "Extra directories absolute imports are resolved against")
	f.Int(config.KeyWorkers, 0, "Worker pool size (default one per CPU)")
	f.StringSlice(config.KeyAlwaysRun, nil, "Globs of tests that are always selected")
	f.StringSlice(config.KeyTestIgnores, nil, "Globs of tests that are never selected")
	f.StringSlice(config.KeyRunAllOnChange, nil, "Globs of files that select every test when changed")
	f.String(config.KeyMetricsFile, "", "Write Prometheus metrics to this file")
	f.String(config.KeyTraceFile, "", "Write OpenTelemetry spans to this file as JSON")
	f.Bool(config.KeyLogJSON, false, "Log in JSON")
	f.Bool(config.KeyVerbose, false, "Log debug output")
}

// load reads the configuration for cmd and applies its logging and tracing settings.
func (c *CLI) load(cmd *cobra.Command) (*domain.Config, string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to resolve directory")
	}

	cfg, err := c.loader.Load(dir, cmd.Flags())
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to load configuration")
	}

	if l, ok := c.logger.(levelSetter); ok {
		l.SetJSON(cfg.LogJSON)
		l.SetVerbose(cfg.Verbose)
	}
	if cfg.TraceFile != "" && c.shutdown == nil {
		shutdown, err := telemetry.InstallFileExporter(cfg.TraceFile)
		if err != nil {
			return nil, "", err
		}
		c.shutdown = shutdown
	}
	return cfg, dir, nil
}
