package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chaininsights/blog/config"
	"github.com/chaininsights/blog/logger"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	dir        string
	configPath string
	log        logger.Logger
}

// siteConfig loads the site configuration. An explicit --config must exist; the
// default <dir>/site.yaml may be absent.
func (o *rootOptions) siteConfig(ctx context.Context) (*config.SiteConfig, error) {
	path, required := o.configPath, true
	if path == "" {
		path, required = filepath.Join(o.dir, config.DefaultPath), false
	}
	return config.Load(ctx, path, required)
}

func (o *rootOptions) configFile() string {
	if o.configPath != "" {
		return o.configPath
	}
	return filepath.Join(o.dir, config.DefaultPath)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "chaininsights-blog",
		Short:         "Chain Insights Blog - static blog generator",
		Long:          `Builds the Chain Insights Blog from markdown content into a static site, and serves it locally while writing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.log.Out = cmd.ErrOrStderr()
			return opts.log.Setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.dir, "dir", "d", ".", "Site root containing content/, assets/ and public/")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Site config file (default <dir>/site.yaml)")
	cmd.PersistentFlags().StringVar(&opts.log.Level, "log-level", "info", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.log.Format, "log-format", logger.FormatConsole, "Log format: console or json")

	cmd.AddCommand(
		newBuildCmd(opts),
		newServeCmd(opts),
		newValidateCmd(opts),
		newSchemaCmd(),
		newRoutesCmd(opts),
	)
	return cmd
}

// Execute runs the command line; SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
