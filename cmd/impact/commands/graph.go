package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/impact/internal/app"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [paths...]",
		Short: "Print the dependency graph in Graphviz DOT format",
		Long: "Print the dependency graph in Graphviz DOT format.\n\n" +
			"With changed paths, only the modules impacted by them are printed.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, dir, err := c.load(cmd)
			if err != nil {
				return err
			}
			changed, err := c.changedPaths(cmd, args)
			if err != nil {
				return err
			}

			out, err := c.app.Graph(cmd.Context(), app.GraphRequest{
				Config:  cfg,
				Changed: changed,
				Base:    dir,
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(out, '\n'))
			return err
		},
	}
	cmd.Flags().String("diff", "", "Read changed paths from a unified diff file, or - for standard input")
	return cmd
}
