package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chaininsights/blog/config"
	"github.com/chaininsights/blog/content"
	"github.com/chaininsights/blog/site"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every blog document against the BlogPost schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := root.siteConfig(ctx)
			if err != nil {
				return err
			}

			c := content.NewCollection(config.BlogCollection, cfg.Collections[config.BlogCollection])
			posts, err := content.Load(ctx, filepath.Join(root.dir, site.ContentDir), c, cfg.Content.Highlight.Theme)
			if err != nil {
				return err
			}

			for _, p := range posts {
				fmt.Fprintf(cmd.OutOrStdout(), "ok  %s -> %s\n", p.Source, p.Route)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d documents valid\n", len(posts))
			return nil
		},
	}
}
