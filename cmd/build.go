package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chaininsights/blog/build"
)

func newBuildCmd(root *rootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a static version of the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := root.siteConfig(ctx)
			if err != nil {
				return err
			}

			res, err := build.Run(ctx, build.Options{Root: root.dir, Config: cfg, OutDir: outDir})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages into %s (%d skipped)\n", len(res.Prerendered), outDir, len(res.Skipped))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "dist", "Output directory")
	return cmd
}
