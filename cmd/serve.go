package cmd

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chaininsights/blog/handlers"
	"github.com/chaininsights/blog/livereload"
	"github.com/chaininsights/blog/metrics"
	"github.com/chaininsights/blog/site"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		port     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the development server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := newDevServer(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer dev.hub.Close()

			srv := &http.Server{
				Addr:              net.JoinHostPort("", port),
				Handler:           dev.metrics.Instrument(dev),
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				log.Info().Str("addr", srv.Addr).Str("base_url", dev.baseURL()).Msg("Starting server")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return errors.Wrap(err, "listen")
				}
				return nil
			})

			if dev.liveReload() {
				w, err := livereload.NewWatcher(dev.watchPaths(), interval, dev.reloadAndNotify)
				if err != nil {
					return err
				}
				g.Go(func() error { return w.Start(ctx) })
			}

			g.Go(func() error {
				<-ctx.Done()
				log.Info().Msg("Shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.Warn().Err(err).Msg("Failed to shutdown gracefully")
				}
				return nil
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "9010", "Port to run the server on")
	cmd.Flags().DurationVar(&interval, "watch-interval", 500*time.Millisecond, "Fallback interval for checking sources when no file events arrive")
	return cmd
}

// devServer serves the current site and swaps it out whenever sources change.
type devServer struct {
	root    *rootOptions
	hub     *livereload.Hub
	metrics *metrics.Metrics

	mu      sync.RWMutex
	site    *site.Site
	handler http.Handler
}

func newDevServer(ctx context.Context, root *rootOptions) (*devServer, error) {
	hub := livereload.NewHub()
	d := &devServer{root: root, hub: hub, metrics: metrics.New(hub.Clients)}
	if err := d.reload(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// reload rebuilds config, site and router. On error the previous site stays in place.
func (d *devServer) reload(ctx context.Context) error {
	cfg, err := d.root.siteConfig(ctx)
	if err != nil {
		return err
	}
	s, err := site.Load(ctx, d.root.dir, cfg)
	if err != nil {
		return err
	}
	s.LiveReload = cfg.Devtools.Enabled

	router, err := handlers.SetupRouter(s)
	if err != nil {
		return err
	}

	top := mux.NewRouter()
	top.Handle(metrics.Path, d.metrics.Handler()).Methods("GET")
	if s.LiveReload {
		top.Handle(handlers.LiveReloadPath, d.hub)
	}
	top.PathPrefix("/").Handler(router)

	d.mu.Lock()
	d.site, d.handler = s, top
	d.mu.Unlock()
	return nil
}

func (d *devServer) reloadAndNotify(ctx context.Context) error {
	err := d.reload(ctx)
	d.metrics.ObserveReload(err)
	if err != nil {
		return err
	}
	d.hub.Broadcast(livereload.ReloadMessage)
	return nil
}

func (d *devServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.RLock()
	h := d.handler
	d.mu.RUnlock()
	h.ServeHTTP(w, r)
}

func (d *devServer) current() *site.Site {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.site
}

func (d *devServer) baseURL() string { return d.current().Config.App.BaseURL }

func (d *devServer) liveReload() bool { return d.current().LiveReload }

func (d *devServer) watchPaths() []string {
	dir := d.root.dir
	return []string{
		filepath.Join(dir, site.ContentDir),
		filepath.Join(dir, site.AssetsDir),
		filepath.Join(dir, site.StaticDir),
		filepath.Join(dir, site.TemplatesDir),
		d.root.configFile(),
	}
}
