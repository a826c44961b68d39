// Package build prerenders a site to static files.
package build

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/chaininsights/blog/assets"
	"github.com/chaininsights/blog/config"
	"github.com/chaininsights/blog/handlers"
	"github.com/chaininsights/blog/preset"
	"github.com/chaininsights/blog/site"
	"github.com/chaininsights/blog/utils"
)

type Options struct {
	Root   string
	Config *config.SiteConfig
	OutDir string
}

// Result summarizes a finished build.
type Result struct {
	Prerendered []string
	Skipped     []string
	Assets      int
}

// Run loads the site and writes every prerendered route to OutDir. Any invalid content
// document fails the build before anything is written.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	p, ok := preset.Lookup(cfg.Output.Preset)
	if !ok {
		return nil, errors.Wrapf(config.ErrInvalidConfig, "unknown output preset %q", cfg.Output.Preset)
	}

	s, err := site.Load(ctx, opts.Root, cfg)
	if err != nil {
		return nil, err
	}

	router, err := handlers.SetupRouter(s)
	if err != nil {
		return nil, errors.Wrap(err, "error setting up router")
	}

	if err := checkOutDir(opts.Root, opts.OutDir); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(opts.OutDir); err != nil {
		return nil, errors.Wrap(err, "clean output directory")
	}
	if err := os.MkdirAll(opts.OutDir, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "error creating output directory")
	}

	if err := copyStatic(filepath.Join(opts.Root, site.StaticDir), opts.OutDir); err != nil {
		return nil, errors.Wrap(err, "error copying static files")
	}

	if err := assets.Write(opts.OutDir, s.Assets); err != nil {
		return nil, err
	}

	server := httptest.NewServer(router)
	defer server.Close()

	res := &Result{Assets: len(s.Assets)}
	for _, route := range router.Routes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rule, ok := cfg.RouteRules.Lookup(route)
		if !ok || !rule.Prerender {
			log.Warn().Str("route", route).Msg("Route is not prerendered; the static output will not contain it")
			res.Skipped = append(res.Skipped, route)
			continue
		}

		if err := generateStaticPage(ctx, server, cfg, route, opts.OutDir); err != nil {
			return nil, errors.Wrapf(err, "error generating static page for %s", route)
		}
		res.Prerendered = append(res.Prerendered, route)
	}

	if err := generateNotFoundPage(ctx, server, cfg, opts.OutDir); err != nil {
		return nil, err
	}

	if cfg.Origin != "" {
		if err := utils.GenerateSitemaps(opts.OutDir, cfg.Origin, router.SitemapEntries()); err != nil {
			return nil, errors.Wrap(err, "error generating sitemap")
		}
	}

	if err := p.Finalize(opts.OutDir); err != nil {
		return nil, errors.Wrapf(err, "apply preset %s", p.Name())
	}

	log.Info().
		Str("out_dir", opts.OutDir).
		Str("preset", p.Name()).
		Int("prerendered", len(res.Prerendered)).
		Int("skipped", len(res.Skipped)).
		Msg("Static site generated")

	return res, nil
}

// checkOutDir refuses output directories that would wipe the site sources.
func checkOutDir(root, outDir string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return errors.WithStack(err)
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return errors.WithStack(err)
	}
	rel, err := filepath.Rel(absOut, absRoot)
	if err != nil {
		return errors.WithStack(err)
	}
	if rel == "." || !strings.HasPrefix(rel, "..") {
		return errors.Errorf("output directory %s contains the site root %s", outDir, root)
	}
	for _, dir := range []string{site.ContentDir, site.AssetsDir, site.StaticDir, site.TemplatesDir} {
		src := filepath.Join(absRoot, dir)
		rel, err := filepath.Rel(src, absOut)
		if err != nil {
			return errors.WithStack(err)
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return errors.Errorf("output directory %s is inside the source directory %s", outDir, src)
		}
	}
	return nil
}

// OutputFile maps an app-relative route to its index.html below outDir.
func OutputFile(outDir, route string) string {
	rel := strings.Trim(route, "/")
	return filepath.Join(outDir, filepath.FromSlash(rel), "index.html")
}

func generateStaticPage(ctx context.Context, server *httptest.Server, cfg *config.SiteConfig, route, outDir string) error {
	body, status, err := fetch(ctx, server, cfg.URL(route))
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return errors.Errorf("unexpected status %d", status)
	}

	filePath := OutputFile(outDir, route)
	if err := writeFile(filePath, body); err != nil {
		return err
	}

	log.Debug().Str("route", route).Str("file", filePath).Msg("Generated page")
	return nil
}

// generateNotFoundPage renders a path no route owns and stores it as 404.html.
func generateNotFoundPage(ctx context.Context, server *httptest.Server, cfg *config.SiteConfig, outDir string) error {
	body, status, err := fetch(ctx, server, cfg.URL("/__not_found__"))
	if err != nil {
		return errors.Wrap(err, "render 404 page")
	}
	if status != http.StatusNotFound {
		return errors.Errorf("render 404 page: unexpected status %d", status)
	}
	return writeFile(filepath.Join(outDir, "404.html"), body)
}

func fetch(ctx context.Context, server *httptest.Server, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+path, nil)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	resp, err := server.Client().Do(req)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	return body, resp.StatusCode, nil
}

func writeFile(filePath string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(filePath, body, 0644))
}

// copyStatic mirrors the public directory into outDir. A missing directory is fine.
func copyStatic(src, outDir string) error {
	if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(outDir, rel)
		log.Debug().Str("src", path).Str("dest", destPath).Msg("Copying static file")
		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	input, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return writeFile(dst, input)
}
