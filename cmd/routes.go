package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/chaininsights/blog/handlers"
	"github.com/chaininsights/blog/site"
)

func newRoutesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List every page route and whether it is prerendered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := root.siteConfig(ctx)
			if err != nil {
				return err
			}
			s, err := site.Load(ctx, root.dir, cfg)
			if err != nil {
				return err
			}
			router, err := handlers.SetupRouter(s)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Route", "URL", "Prerender")
			for _, route := range router.Routes() {
				rule, ok := cfg.RouteRules.Lookup(route)
				if err := table.Append(route, cfg.URL(route), strconv.FormatBool(ok && rule.Prerender)); err != nil {
					return errors.Wrapf(err, "route %s", route)
				}
			}
			return errors.Wrap(table.Render(), "render route table")
		},
	}
}
