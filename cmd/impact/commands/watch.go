package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/impact/internal/app"
	"go.trai.ch/impact/internal/core/domain"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Select tests continuously as files change",
		Long: "Watch the catalog roots and print the affected tests after every change.\n\n" +
			"Each selection covers every file changed since the watch started.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			if err := validateFormat(format); err != nil {
				return err
			}
			cfg, dir, err := c.load(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var writeErr error
			err = c.app.Watch(cmd.Context(), app.WatchRequest{Config: cfg, Base: dir}, func(res domain.ImpactResult) {
				if writeErr != nil {
					return
				}
				if format == formatLines {
					_, writeErr = fmt.Fprintln(out, "---")
				}
				if writeErr == nil {
					writeErr = writeResult(out, format, res)
				}
			})
			if err != nil {
				return err
			}
			return writeErr
		},
	}
	cmd.Flags().StringP("format", "f", formatLines, "Output format: lines, json or yaml")
	return cmd
}
