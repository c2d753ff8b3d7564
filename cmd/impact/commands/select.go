package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/impact/internal/app"
	"go.trai.ch/zerr"
)

const stdinArg = "-"

func (c *CLI) newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select [paths...]",
		Short: "Print the tests affected by the changed paths",
		Long: "Print the tests affected by the changed paths, one per line.\n\n" +
			"Paths come from the arguments, from standard input when an argument is \"-\",\n" +
			"or from a unified diff with --diff. They are taken as given: pass whatever\n" +
			"your diff produced, e.g. the output of `git diff --name-only origin/main...`.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if err := validateFormat(format); err != nil {
				return err
			}
			cfg, dir, err := c.load(cmd)
			if err != nil {
				return err
			}
			changed, err := c.changedPaths(cmd, args)
			if err != nil {
				return err
			}

			res, err := c.app.Select(cmd.Context(), app.SelectRequest{
				Config:  cfg,
				Changed: changed,
				Base:    dir,
			})
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), format, res)
		},
	}
	cmd.Flags().String("diff", "", "Read changed paths from a unified diff file, or - for standard input")
	cmd.Flags().StringP("format", "f", formatLines, "Output format: lines, json or yaml")
	return cmd
}

// changedPaths collects the changed paths from the arguments, standard input
// and the --diff flag, in that order.
func (c *CLI) changedPaths(cmd *cobra.Command, args []string) ([]string, error) {
	var changed []string
	for _, arg := range args {
		if arg != stdinArg {
			changed = append(changed, arg)
			continue
		}
		paths, err := c.changes.ReadPaths(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		changed = append(changed, paths...)
	}

	diffFile, _ := cmd.Flags().GetString("diff")
	if diffFile == "" {
		return changed, nil
	}
	var r io.Reader
	if diffFile == stdinArg {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(diffFile) //nolint:gosec // Path comes from the command line
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to open diff"), "file", diffFile)
		}
		defer f.Close() //nolint:errcheck // Read-only file
		r = f
	}
	paths, err := c.changes.ReadDiff(r)
	if err != nil {
		return nil, err
	}
	return append(changed, paths...), nil
}
